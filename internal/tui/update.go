package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akyairhashvil/crewboard/internal/report"
	"github.com/akyairhashvil/crewboard/internal/syncer"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/akyairhashvil/crewboard/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// wheelCols is how far one horizontal wheel notch scrolls.
const wheelCols = 4

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil
	case snapshotMsg:
		m.handleSnapshot(msg)
		return m, nil
	case syncEventMsg:
		m.handleSyncEvent(syncer.Event(msg))
		return m, tea.Batch(m.fetchCmd(), m.waitForSync())
	case syncClosedMsg:
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *BoardModel) clampScroll() {
	f := m.frame()
	m.scrollX, m.scrollY = f.scrollX, f.scrollY
}

// --- Keyboard ---

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if st, ok := m.modal.AddTaskState(); ok {
		return m.updateAddTask(st, msg)
	}
	if m.modal.Is(ModalTaskDetail) {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "q":
			m.modal.Close()
		}
		return m, nil
	}
	next, cmd, _ := m.keys.Handle(m, msg.String())
	return next, cmd
}

func (m BoardModel) updateAddTask(st *AddTaskState, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	submit, cancel, cmd := st.Update(msg)
	switch {
	case cancel:
		m.modal.Close()
		m.setStatus("Add cancelled")
	case submit:
		draft, err := st.Draft()
		if err != nil {
			st.err = err
			return m, nil
		}
		task, err := m.board.AddTask(st.RowID, draft)
		if err != nil {
			st.err = err
			return m, nil
		}
		m.modal.Close()
		m.setStatus(fmt.Sprintf("Added %q for %s", task.Title, st.Employee))
	}
	return m, cmd
}

func (m *BoardModel) openAddTask(rowID string, date time.Time) tea.Cmd {
	row, ok := m.board.Row(rowID)
	if !ok {
		return nil
	}
	m.modal.Open(newAddTaskState(rowID, row.Name, date))
	return textinput.Blink
}

func (m *BoardModel) openDetail(taskID string) {
	task, rowID, ok := m.board.Task(taskID)
	if !ok {
		return
	}
	row, _ := m.board.Row(rowID)
	m.modal.Open(&TaskDetailState{Task: task, Employee: row.Name})
}

func handleQuit(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func handleCancelGesture(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	if m.board.CancelGesture() {
		m.setStatus("Drag cancelled")
	}
	return m, nil, true
}

func (m *BoardModel) setMode(mode timeline.ViewMode) {
	m.board.CancelGesture()
	m.mode = mode
	m.scrollToToday()
}

func handleCycleMode(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.setMode(m.mode.Next())
	return m, nil, true
}

func handleSetMode(m BoardModel, key string) (BoardModel, tea.Cmd, bool) {
	mode, err := timeline.ParseViewMode(key)
	if err != nil {
		return m, nil, false
	}
	m.setMode(mode)
	return m, nil, true
}

func handleShiftWindow(m BoardModel, key string) (BoardModel, tea.Cmd, bool) {
	dir := 1
	if key == "left" || key == "h" {
		dir = -1
	}
	m.board.CancelGesture()
	m.ref = timeline.Shift(m.ref, m.mode, dir)
	m.scrollX = 0
	return m, nil, true
}

func handleToday(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.board.CancelGesture()
	m.ref = m.today()
	m.scrollToToday()
	return m, nil, true
}

func handleScrollX(m BoardModel, key string) (BoardModel, tea.Cmd, bool) {
	step := max(1, m.frame().viewCols/2)
	if key == "[" || key == "shift+left" {
		step = -step
	}
	m.scrollX += step
	m.clampScroll()
	return m, nil, true
}

func handleScrollY(m BoardModel, key string) (BoardModel, tea.Cmd, bool) {
	if key == "up" || key == "k" {
		m.scrollY--
	} else {
		m.scrollY++
	}
	m.clampScroll()
	return m, nil, true
}

// handleAddAtTop opens the add form for the topmost visible employee on
// today, or on the window start when today is not shown.
func handleAddAtTop(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	f := m.frame()
	for _, ref := range f.lines[f.scrollY:] {
		if ref.divider() {
			continue
		}
		date := f.layout.Window.Start
		if f.layout.Window.Contains(m.today()) {
			date = m.today()
		}
		return m, m.openAddTask(f.layout.Rows[ref.row].RowID, date), true
	}
	m.setStatusError("No employees to add a task for")
	return m, nil, true
}

func handleRefresh(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.setStatus("Refreshing...")
	return m, m.fetchCmd(), true
}

func handleExportPDF(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	path, err := m.exportPDF()
	if err != nil {
		util.LogError("export pdf", err)
		m.setStatusError(fmt.Sprintf("Export failed: %v", err))
		return m, nil, true
	}
	m.setStatus("Exported " + path)
	return m, nil, true
}

func (m BoardModel) exportPDF() (string, error) {
	dir := m.exportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	window := timeline.ComputeViewWindow(m.ref, m.mode)
	path := util.ExportPath(dir, m.mode.String(), window.Start.Format(dateLayout), "pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	layout := m.board.Render(m.ref, m.mode, m.today())
	title := fmt.Sprintf("%s %s", m.mode, windowLabel(window))
	if err := report.WritePDF(f, layout, m.board.Rows(), title); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

// --- Mouse ---

func (m BoardModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsOpen() {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollY--
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollY++
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelLeft:
		m.scrollX -= wheelCols
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelRight:
		m.scrollX += wheelCols
		m.clampScroll()
		return m, nil
	}

	f := m.frame()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return m.pointerDown(f, msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.pointerMove(f, msg.X)
	case tea.MouseActionRelease:
		m.pointerUp()
	}
	return m, nil
}

// pointerDown starts a gesture on a bar, or asks to add a task when the
// press lands on an empty cell of a row.
func (m BoardModel) pointerDown(f frame, x, y int) (tea.Model, tea.Cmd) {
	if _, active := m.board.Dragging(); active {
		return m, nil
	}
	ref, ok := f.lineAt(y)
	if !ok || ref.divider() {
		return m, nil
	}
	col, ok := f.column(x)
	if !ok || col >= f.totalCols {
		return m, nil
	}
	px := f.pointerPx(x)
	if bar, ok := f.barAt(ref, col); ok {
		kind := gestureAt(bar, px)
		if err := m.board.BeginGesture(kind, bar.TaskID, px); err != nil {
			m.setStatusError(fmt.Sprintf("Cannot drag: %v", err))
			return m, nil
		}
		m.setStatus(dragStatus(m.board))
		return m, nil
	}

	m.input.pendingAdd = nil
	if _, err := m.board.ClickRow(f.layout.Rows[ref.row].RowID, px, f.layout.Window); err != nil {
		m.setStatusError(err.Error())
		return m, nil
	}
	req := m.input.pendingAdd
	if req == nil {
		return m, nil
	}
	m.input.pendingAdd = nil
	return m, m.openAddTask(req.rowID, req.date)
}

func (m *BoardModel) pointerMove(f frame, x int) {
	if _, active := m.board.Dragging(); !active {
		return
	}
	if m.board.UpdateGesture(f.pointerPx(x), m.mode) {
		m.setStatus(dragStatus(m.board))
	}
}

// pointerUp commits the gesture. A release without movement is a click and
// opens the task details.
func (m *BoardModel) pointerUp() {
	res, err := m.board.EndGesture()
	if errors.Is(err, timeline.ErrNoGesture) {
		return
	}
	if err != nil {
		util.LogError("end gesture", err)
		m.setStatusError(fmt.Sprintf("Drag failed: %v", err))
		return
	}
	if !res.Committed {
		m.setStatus("")
		m.openDetail(res.TaskID)
		return
	}
	task, _, _ := m.board.Task(res.TaskID)
	m.setStatus(fmt.Sprintf("%s %q: %s", res.Kind, task.Title, rangeLabel(res.Start, res.End)))
}

func dragStatus(b *timeline.Board) string {
	s, ok := b.Dragging()
	if !ok {
		return ""
	}
	start, end := s.Preview()
	return fmt.Sprintf("%s %+dd  %s  [esc] cancel", s.Kind, s.DeltaDays, rangeLabel(start, end))
}
