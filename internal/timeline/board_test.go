package timeline

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
)

type rescheduleCall struct {
	id         int64
	start, end time.Time
}

type recordingSyncer struct {
	rescheduled []rescheduleCall
	created     []GanttTask
	createdFor  []int64
}

func (r *recordingSyncer) OnTaskRescheduled(id int64, start, end time.Time) {
	r.rescheduled = append(r.rescheduled, rescheduleCall{id, start, end})
}

func (r *recordingSyncer) OnTaskCreated(employeeID int64, task GanttTask) {
	r.createdFor = append(r.createdFor, employeeID)
	r.created = append(r.created, task)
}

func ptr[T any](v T) *T { return &v }

func fixture() ([]models.Task, []models.Employee) {
	employees := []models.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", RoleTitle: ptr("Engineer")},
		{ID: 2, FirstName: "Grace", LastName: "Hopper"},
	}
	tasks := []models.Task{
		{ID: 10, Title: "A", StartDate: ptr(date(2024, 1, 1)), EndDate: ptr(date(2024, 1, 3)), AssignedEmployeeID: 1},
		{ID: 11, Title: "B", StartDate: ptr(date(2024, 1, 5)), EndDate: ptr(date(2024, 1, 6)), AssignedEmployeeID: 1},
		{ID: 12, Title: "C", StartDate: ptr(date(2024, 1, 2)), EndDate: ptr(date(2024, 1, 4)), AssignedEmployeeID: 2},
	}
	return tasks, employees
}

func newTestBoard(t *testing.T) (*Board, *recordingSyncer) {
	t.Helper()
	sync := &recordingSyncer{}
	b := NewBoard(sync)
	n := 0
	b.newID = func() string {
		n++
		return fmt.Sprintf("local-%d", n)
	}
	tasks, employees := fixture()
	b.Reconcile(tasks, employees)
	return b, sync
}

func TestBoardReconcileBuildsRows(t *testing.T) {
	b, _ := newTestBoard(t)
	rows := b.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Ada Lovelace" || rows[0].Role != "Engineer" || len(rows[0].Tasks) != 2 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[0].LaneCount() != 1 {
		t.Fatalf("non-overlapping tasks should share a lane")
	}
}

func TestBoardMoveCommit(t *testing.T) {
	b, sync := newTestBoard(t)
	if err := b.BeginGesture(GestureMove, TaskLocalID(10), 100); err != nil {
		t.Fatalf("BeginGesture failed: %v", err)
	}
	b.UpdateGesture(400, ViewWeek)
	res, err := b.EndGesture()
	if err != nil {
		t.Fatalf("EndGesture failed: %v", err)
	}
	if !res.Committed || res.DeltaDays != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	task, rowID, ok := b.Task(TaskLocalID(10))
	if !ok || rowID != RowLocalID(1) {
		t.Fatalf("task lookup failed")
	}
	if !task.Start.Equal(date(2024, 1, 4)) || !task.End.Equal(date(2024, 1, 6)) {
		t.Fatalf("task dates = %s..%s", task.Start, task.End)
	}
	row, _ := b.Row(RowLocalID(1))
	if row.LaneCount() != 2 {
		t.Fatalf("moved task overlaps B; LaneCount = %d", row.LaneCount())
	}
	if len(sync.rescheduled) != 1 {
		t.Fatalf("expected one sync call, got %d", len(sync.rescheduled))
	}
	call := sync.rescheduled[0]
	if call.id != 10 || !call.start.Equal(date(2024, 1, 4)) || !call.end.Equal(date(2024, 1, 6)) {
		t.Fatalf("sync call = %+v", call)
	}
}

func TestBoardResizeStartOverClamp(t *testing.T) {
	b, sync := newTestBoard(t)
	_ = b.BeginGesture(GestureResizeStart, TaskLocalID(10), 0)
	b.UpdateGesture(1000, ViewWeek)
	if _, err := b.EndGesture(); err != nil {
		t.Fatalf("EndGesture failed: %v", err)
	}
	task, _, _ := b.Task(TaskLocalID(10))
	if !task.Start.Equal(date(2024, 1, 3)) || !task.End.Equal(date(2024, 1, 3)) {
		t.Fatalf("clamped dates = %s..%s", task.Start, task.End)
	}
	if len(sync.rescheduled) != 1 {
		t.Fatalf("expected sync call")
	}
}

func TestBoardZeroDeltaReleaseIsClick(t *testing.T) {
	b, sync := newTestBoard(t)
	_ = b.BeginGesture(GestureMove, TaskLocalID(11), 100)
	b.UpdateGesture(120, ViewWeek)
	res, err := b.EndGesture()
	if err != nil || res.Committed {
		t.Fatalf("expected uncommitted click, got %+v %v", res, err)
	}
	if len(sync.rescheduled) != 0 {
		t.Fatalf("click must not sync")
	}
}

func TestBoardCancelGestureDoesNotSync(t *testing.T) {
	b, sync := newTestBoard(t)
	_ = b.BeginGesture(GestureMove, TaskLocalID(11), 100)
	b.UpdateGesture(600, ViewWeek)
	if !b.CancelGesture() {
		t.Fatalf("expected active gesture to cancel")
	}
	task, _, _ := b.Task(TaskLocalID(11))
	if !task.Start.Equal(date(2024, 1, 5)) {
		t.Fatalf("cancel changed task: %s", task.Start)
	}
	if len(sync.rescheduled) != 0 {
		t.Fatalf("cancel must not sync")
	}
}

func TestBoardRenderShowsPreview(t *testing.T) {
	b, _ := newTestBoard(t)
	_ = b.BeginGesture(GestureMove, TaskLocalID(10), 0)
	b.UpdateGesture(100, ViewWeek)
	l := b.Render(date(2024, 1, 1), ViewWeek, date(2024, 1, 1))
	bar, ok := l.Rows[0].BarAt(150, 0)
	if !ok || bar.TaskID != TaskLocalID(10) || !bar.VisibleStart.Equal(date(2024, 1, 2)) {
		t.Fatalf("preview bar = %+v %v", bar, ok)
	}
	stored, _, _ := b.Task(TaskLocalID(10))
	if !stored.Start.Equal(date(2024, 1, 1)) {
		t.Fatalf("preview leaked into stored task")
	}
}

func TestBoardUnpersistedTaskSkipsSync(t *testing.T) {
	b, sync := newTestBoard(t)
	task, err := b.AddTask(RowLocalID(2), TaskDraft{Title: "New", Start: date(2024, 1, 10)})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	_ = b.BeginGesture(GestureMove, task.ID, 0)
	b.UpdateGesture(200, ViewWeek)
	if _, err := b.EndGesture(); err != nil {
		t.Fatalf("EndGesture failed: %v", err)
	}
	if len(sync.rescheduled) != 0 {
		t.Fatalf("unpersisted task should not sync a reschedule")
	}
}

func TestBoardAddTask(t *testing.T) {
	b, sync := newTestBoard(t)
	task, err := b.AddTask(RowLocalID(2), TaskDraft{
		Title:      "  Write report ",
		Difficulty: models.DifficultyHard,
		Start:      date(2024, 1, 3),
		End:        date(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.ID != "local-1" || task.Title != "Write report" || task.Color != ColorRed {
		t.Fatalf("task = %+v", task)
	}
	if !task.End.Equal(task.Start) {
		t.Fatalf("end before start should clamp to start")
	}
	if task.Lane != 1 {
		t.Fatalf("overlapping new task should open lane 1, got %d", task.Lane)
	}
	if len(sync.created) != 1 || sync.createdFor[0] != 2 {
		t.Fatalf("expected one create sync for employee 2")
	}
	if _, err := b.AddTask("missing", TaskDraft{Title: "x"}); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
	if _, err := b.AddTask(RowLocalID(1), TaskDraft{Title: "  "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestBoardClickRowRequestsAddTask(t *testing.T) {
	b, _ := newTestBoard(t)
	var gotRow string
	var gotDate time.Time
	b.OnRequestAddTask = func(rowID string, d time.Time) {
		gotRow, gotDate = rowID, d
	}
	window := ComputeViewWindow(date(2024, 1, 3), ViewWeek)
	if _, err := b.ClickRow(RowLocalID(1), 250, window); err != nil {
		t.Fatalf("ClickRow failed: %v", err)
	}
	if gotRow != RowLocalID(1) || !gotDate.Equal(date(2024, 1, 3)) {
		t.Fatalf("callback got %s %s", gotRow, gotDate)
	}
}

func TestBoardReconcileDropsVanishedGesture(t *testing.T) {
	b, _ := newTestBoard(t)
	_ = b.BeginGesture(GestureMove, TaskLocalID(12), 0)
	tasks, employees := fixture()
	b.Reconcile(tasks, employees)
	if _, ok := b.Dragging(); !ok {
		t.Fatalf("gesture on surviving task should continue")
	}
	b.Reconcile(tasks[:2], employees)
	if _, ok := b.Dragging(); ok {
		t.Fatalf("gesture on removed task should be dropped")
	}
}

func TestBoardReconcileRebasesLiveGesture(t *testing.T) {
	b, sync := newTestBoard(t)
	if err := b.BeginGesture(GestureMove, TaskLocalID(12), 0); err != nil {
		t.Fatalf("BeginGesture failed: %v", err)
	}
	b.UpdateGesture(200, ViewWeek)

	tasks, employees := fixture()
	tasks[2].StartDate = ptr(date(2024, 1, 8))
	tasks[2].EndDate = ptr(date(2024, 1, 9))
	b.Reconcile(tasks, employees)

	s, ok := b.Dragging()
	if !ok {
		t.Fatalf("gesture should survive the refresh")
	}
	if !s.OriginalStart.Equal(date(2024, 1, 8)) || s.DeltaDays != 2 {
		t.Fatalf("gesture not rebased: %+v", s)
	}
	res, err := b.EndGesture()
	if err != nil || !res.Committed {
		t.Fatalf("EndGesture = %+v, %v", res, err)
	}
	if !res.Start.Equal(date(2024, 1, 10)) || !res.End.Equal(date(2024, 1, 11)) {
		t.Fatalf("delta applied to stale dates: %s - %s", res.Start, res.End)
	}
	last := sync.rescheduled[len(sync.rescheduled)-1]
	if last.id != 12 || !last.start.Equal(date(2024, 1, 10)) {
		t.Fatalf("unexpected sync %+v", last)
	}
}

func TestBoardBeginGestureUnknownTask(t *testing.T) {
	b, _ := newTestBoard(t)
	if err := b.BeginGesture(GestureMove, "nope", 0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
