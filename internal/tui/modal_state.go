package tui

import "github.com/akyairhashvil/crewboard/internal/timeline"

type ModalType int

const (
	ModalNone ModalType = iota
	ModalAddTask
	ModalTaskDetail
)

type ModalState interface {
	Type() ModalType
}

// TaskDetailState is the read-only pane opened by clicking a bar.
type TaskDetailState struct {
	Task     timeline.GanttTask
	Employee string
}

func (s *TaskDetailState) Type() ModalType { return ModalTaskDetail }

// ModalManager tracks the open modal, if any.
type ModalManager struct {
	current ModalState
}

func newModalManager() *ModalManager {
	return &ModalManager{}
}

func (m *ModalManager) IsOpen() bool {
	return m.current != nil
}

func (m *ModalManager) Current() ModalState {
	return m.current
}

func (m *ModalManager) Open(state ModalState) {
	m.current = state
}

func (m *ModalManager) Close() {
	m.current = nil
}

func (m *ModalManager) Is(t ModalType) bool {
	return m.current != nil && m.current.Type() == t
}

func (m *ModalManager) AddTaskState() (*AddTaskState, bool) {
	state, ok := m.current.(*AddTaskState)
	return state, ok
}

func (m *ModalManager) TaskDetailState() (*TaskDetailState, bool) {
	state, ok := m.current.(*TaskDetailState)
	return state, ok
}
