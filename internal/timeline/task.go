package timeline

import (
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
)

// ColorCategory is the visual coding of a bar.
type ColorCategory int

const (
	ColorBlue ColorCategory = iota
	ColorGreen
	ColorAmber
	ColorRed
)

func (c ColorCategory) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorAmber:
		return "amber"
	case ColorRed:
		return "red"
	}
	return "blue"
}

// Status is the display state of a task on the board.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// GanttTask is one bar on the board.
type GanttTask struct {
	ID          string
	ExternalID  int64 // 0 until the backend has stored the task
	Title       string
	Subtitle    string
	Description string
	ProjectRef  string
	Start       time.Time
	End         time.Time
	Color       ColorCategory
	Status      Status
	Difficulty  models.Difficulty
	Lane        int
}

// Persisted reports whether the backend knows this task.
func (t GanttTask) Persisted() bool {
	return t.ExternalID > 0
}

// LengthDays counts the calendar days the task covers, both ends included.
func (t GanttTask) LengthDays() int {
	return DiffDays(t.Start, t.End) + 1
}

// EmployeeRow groups the tasks of one employee.
type EmployeeRow struct {
	ID         string
	ExternalID int64
	Name       string
	Role       string
	AvatarRef  string
	Tasks      []GanttTask
}

// LaneCount is derived from the tasks' lanes and is never stored.
func (r EmployeeRow) LaneCount() int {
	return LaneCount(r.Tasks)
}

func (r EmployeeRow) clone() EmployeeRow {
	out := r
	out.Tasks = append([]GanttTask(nil), r.Tasks...)
	return out
}

func (r EmployeeRow) taskIndex(id string) int {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
