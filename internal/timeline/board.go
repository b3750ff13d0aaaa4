package timeline

import (
	"errors"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/google/uuid"
)

var (
	ErrRowNotFound  = errors.New("employee row not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyTitle   = errors.New("task title is required")
)

// Syncer receives committed local changes. Calls must not block.
type Syncer interface {
	OnTaskRescheduled(externalID int64, start, end time.Time)
	OnTaskCreated(employeeExternalID int64, task GanttTask)
}

// TaskDraft is what the add-task flow collects before a task exists.
type TaskDraft struct {
	Title       string
	Description string
	ProjectRef  string
	Difficulty  models.Difficulty
	Start       time.Time
	End         time.Time
}

// Board owns the employee rows. Rows change only through EndGesture, AddTask
// and Reconcile, and each of those repacks lanes before returning.
type Board struct {
	rows  []EmployeeRow
	drag  DragController
	sync  Syncer
	newID func() string

	// OnRequestAddTask fires when an empty spot of a row is clicked.
	OnRequestAddTask func(rowID string, date time.Time)
}

// NewBoard returns an empty board. sync may be nil.
func NewBoard(sync Syncer) *Board {
	return &Board{sync: sync, newID: uuid.NewString}
}

// Rows returns a copy of the rows.
func (b *Board) Rows() []EmployeeRow {
	out := make([]EmployeeRow, len(b.rows))
	for i, r := range b.rows {
		out[i] = r.clone()
	}
	return out
}

// Row returns a copy of the row with the given id.
func (b *Board) Row(id string) (EmployeeRow, bool) {
	i := b.rowIndex(id)
	if i < 0 {
		return EmployeeRow{}, false
	}
	return b.rows[i].clone(), true
}

// Task finds a task and the id of the row holding it.
func (b *Board) Task(id string) (GanttTask, string, bool) {
	for _, r := range b.rows {
		if i := r.taskIndex(id); i >= 0 {
			return r.Tasks[i], r.ID, true
		}
	}
	return GanttTask{}, "", false
}

// Dragging returns the live gesture, if any.
func (b *Board) Dragging() (DragState, bool) {
	return b.drag.State()
}

// Reconcile replaces every row with fresh backend data. A gesture on a task
// that survived the refresh keeps going from the refreshed dates; otherwise
// it is dropped.
func (b *Board) Reconcile(tasks []models.Task, employees []models.Employee) {
	b.rows = BuildRows(tasks, employees)
	s, ok := b.drag.State()
	if !ok {
		return
	}
	task, rowID, found := b.Task(s.TaskID)
	if !found || rowID != s.RowID {
		b.drag.Cancel()
		return
	}
	b.drag.Rebase(task.Start, task.End)
}

// BeginGesture starts dragging a task from pointer position x.
func (b *Board) BeginGesture(kind GestureKind, taskID string, x float64) error {
	task, rowID, ok := b.Task(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	return b.drag.Begin(kind, taskID, rowID, task.Start, task.End, x)
}

// UpdateGesture feeds a pointer move; true means the preview changed.
func (b *Board) UpdateGesture(x float64, mode ViewMode) bool {
	return b.drag.Update(x, mode.PixelsPerDay())
}

// CancelGesture abandons the live gesture. Nothing was committed, so nothing
// is restored and nothing is synced.
func (b *Board) CancelGesture() bool {
	return b.drag.Cancel()
}

// EndGesture releases the pointer. A nonzero delta is written to the task,
// the row is repacked and the change is handed to the syncer.
func (b *Board) EndGesture() (DragResult, error) {
	res, err := b.drag.Release()
	if err != nil || !res.Committed {
		return res, err
	}
	ri := b.rowIndex(res.RowID)
	if ri < 0 {
		return res, ErrRowNotFound
	}
	row := &b.rows[ri]
	ti := row.taskIndex(res.TaskID)
	if ti < 0 {
		return res, ErrTaskNotFound
	}
	row.Tasks[ti].Start = res.Start
	row.Tasks[ti].End = res.End
	row.Tasks = AssignLanes(row.Tasks)

	task := row.Tasks[row.taskIndex(res.TaskID)]
	if b.sync != nil && task.Persisted() {
		b.sync.OnTaskRescheduled(task.ExternalID, task.Start, task.End)
	}
	return res, nil
}

// AddTask appends a new task to a row and hands it to the syncer.
func (b *Board) AddTask(rowID string, draft TaskDraft) (GanttTask, error) {
	ri := b.rowIndex(rowID)
	if ri < 0 {
		return GanttTask{}, ErrRowNotFound
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return GanttTask{}, ErrEmptyTitle
	}
	start := Midnight(draft.Start)
	end := draft.End
	if end.IsZero() || DiffDays(start, end) < 0 {
		end = start
	}
	task := GanttTask{
		ID:          b.newID(),
		Title:       title,
		Subtitle:    draft.ProjectRef,
		Description: draft.Description,
		ProjectRef:  draft.ProjectRef,
		Start:       start,
		End:         Midnight(end),
		Color:       ColorFor(draft.Difficulty),
		Status:      StatusTodo,
		Difficulty:  draft.Difficulty,
	}
	row := &b.rows[ri]
	row.Tasks = AssignLanes(append(row.Tasks, task))
	task = row.Tasks[row.taskIndex(task.ID)]
	if b.sync != nil {
		b.sync.OnTaskCreated(row.ExternalID, task)
	}
	return task, nil
}

// ClickRow maps a click at pixel px (from the window's left edge) on an empty
// part of a row to a date and raises OnRequestAddTask.
func (b *Board) ClickRow(rowID string, px float64, window ViewWindow) (time.Time, error) {
	if b.rowIndex(rowID) < 0 {
		return time.Time{}, ErrRowNotFound
	}
	date := window.DateAt(px)
	if b.OnRequestAddTask != nil {
		b.OnRequestAddTask(rowID, date)
	}
	return date, nil
}

// Render lays the board out for the window around ref. A live gesture is
// drawn at its preview dates; lanes are only repacked on commit.
func (b *Board) Render(ref time.Time, mode ViewMode, today time.Time) BoardLayout {
	window := ComputeViewWindow(ref, mode)
	rows := b.rows
	if s, ok := b.drag.State(); ok {
		rows = b.Rows()
		if ri := indexOfRow(rows, s.RowID); ri >= 0 {
			if ti := rows[ri].taskIndex(s.TaskID); ti >= 0 {
				rows[ri].Tasks[ti].Start, rows[ri].Tasks[ti].End = s.Preview()
			}
		}
	}
	return Layout(window, rows, today, DefaultGeometry())
}

func (b *Board) rowIndex(id string) int {
	return indexOfRow(b.rows, id)
}

func indexOfRow(rows []EmployeeRow, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}
