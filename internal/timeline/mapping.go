package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/util"
)

// ColorFor picks the bar color for a difficulty.
func ColorFor(d models.Difficulty) ColorCategory {
	switch models.Difficulty(strings.ToLower(string(d))) {
	case models.DifficultyEasy:
		return ColorGreen
	case models.DifficultyMedium:
		return ColorAmber
	case models.DifficultyHard:
		return ColorRed
	}
	return ColorBlue
}

// StatusFor maps backend states, including a few legacy spellings.
func StatusFor(state models.TaskState) Status {
	switch strings.ToLower(strings.ReplaceAll(string(state), "-", "_")) {
	case "in_progress", "inprogress", "active", "review":
		return StatusInProgress
	case "done", "closed", "completed", "resolved":
		return StatusDone
	}
	return StatusTodo
}

// TaskLocalID is the board id of a task the backend has stored.
func TaskLocalID(externalID int64) string {
	return fmt.Sprintf("task-%d", externalID)
}

// RowLocalID is the board id of an employee row.
func RowLocalID(externalID int64) string {
	return fmt.Sprintf("emp-%d", externalID)
}

// TaskDates resolves the bar range of a backend task. Missing dates fall back
// to the due date; a task with no dates at all cannot be placed.
func TaskDates(t models.Task) (time.Time, time.Time, bool) {
	var start, end *time.Time
	for _, d := range []*time.Time{t.StartDate, t.DueDate, t.EndDate} {
		if d != nil && !d.IsZero() {
			start = d
			break
		}
	}
	if start == nil {
		return time.Time{}, time.Time{}, false
	}
	end = start
	for _, d := range []*time.Time{t.EndDate, t.DueDate} {
		if d != nil && !d.IsZero() {
			end = d
			break
		}
	}
	s, e := Midnight(*start), Midnight(*end)
	if DiffDays(s, e) < 0 {
		e = s
	}
	return s, e, true
}

// FromTask converts a backend task into an unpacked bar.
func FromTask(t models.Task) (GanttTask, bool) {
	start, end, ok := TaskDates(t)
	if !ok {
		return GanttTask{}, false
	}
	gt := GanttTask{
		ID:          TaskLocalID(t.ID),
		ExternalID:  t.ID,
		Title:       t.Title,
		Start:       start,
		End:         end,
		Color:       ColorFor(t.Difficulty),
		Status:      StatusFor(t.State),
		Difficulty:  t.Difficulty,
		Description: util.Deref(t.Description),
		ProjectRef:  util.Deref(t.ProjectRef),
		Subtitle:    util.Deref(t.ProjectRef),
	}
	return gt, true
}

// BuildRows produces one packed row per employee, in the order given.
// Tasks assigned to unknown employees or without dates are dropped.
func BuildRows(tasks []models.Task, employees []models.Employee) []EmployeeRow {
	rows := make([]EmployeeRow, 0, len(employees))
	index := make(map[int64]int, len(employees))
	for _, e := range employees {
		if _, dup := index[e.ID]; dup {
			continue
		}
		row := EmployeeRow{
			ID:         RowLocalID(e.ID),
			ExternalID: e.ID,
			Name:       e.FullName(),
			Role:       util.Deref(e.RoleTitle),
			AvatarRef:  util.Deref(e.AvatarRef),
		}
		index[e.ID] = len(rows)
		rows = append(rows, row)
	}
	for _, t := range tasks {
		i, ok := index[t.AssignedEmployeeID]
		if !ok {
			continue
		}
		if gt, ok := FromTask(t); ok {
			rows[i].Tasks = append(rows[i].Tasks, gt)
		}
	}
	for i := range rows {
		rows[i].Tasks = AssignLanes(rows[i].Tasks)
	}
	return rows
}
