package testutil

import (
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/util"
)

// TaskBuilder provides fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask(id int64) *TaskBuilder {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &TaskBuilder{
		task: models.Task{
			ID:         id,
			Title:      "Test Task",
			StartDate:  util.Ptr(start),
			EndDate:    util.Ptr(start),
			State:      models.StateTodo,
			Difficulty: models.DifficultyMedium,
		},
	}
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithDates(start, end time.Time) *TaskBuilder {
	b.task.StartDate = &start
	b.task.EndDate = &end
	return b
}

func (b *TaskBuilder) For(employeeID int64) *TaskBuilder {
	b.task.AssignedEmployeeID = employeeID
	return b
}

func (b *TaskBuilder) WithDifficulty(d models.Difficulty) *TaskBuilder {
	b.task.Difficulty = d
	return b
}

func (b *TaskBuilder) WithProject(ref string) *TaskBuilder {
	b.task.ProjectRef = &ref
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}

// EmployeeBuilder provides fluent API for creating test employees.
type EmployeeBuilder struct {
	emp models.Employee
}

func NewEmployee(id int64) *EmployeeBuilder {
	return &EmployeeBuilder{
		emp: models.Employee{ID: id, FirstName: "Test", LastName: "Employee"},
	}
}

func (b *EmployeeBuilder) Named(first, last string) *EmployeeBuilder {
	b.emp.FirstName = first
	b.emp.LastName = last
	return b
}

func (b *EmployeeBuilder) WithRole(role string) *EmployeeBuilder {
	b.emp.RoleTitle = &role
	return b
}

func (b *EmployeeBuilder) Build() models.Employee {
	return b.emp
}

// Day returns midnight UTC of a day in January 2024.
func Day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}
