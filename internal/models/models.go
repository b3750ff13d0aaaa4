package models

import "time"

// TaskState enumerates the backend workflow states of a task.
type TaskState string

const (
	StateTodo       TaskState = "todo"
	StateInProgress TaskState = "in_progress"
	StateDone       TaskState = "done"
)

// Difficulty classifies a task; it drives the default bar color.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Employee is a person tasks can be assigned to.
type Employee struct {
	ID        int64   `json:"id" yaml:"id"`
	FirstName string  `json:"firstName" yaml:"first_name"`
	LastName  string  `json:"lastName" yaml:"last_name"`
	AvatarRef *string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	RoleTitle *string `json:"roleTitle,omitempty" yaml:"role,omitempty"`
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Task is the backend representation of a unit of work.
type Task struct {
	ID                 int64      `json:"id" yaml:"id"`
	Title              string     `json:"title" yaml:"title"`
	Description        *string    `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate          *time.Time `json:"startDate,omitempty" yaml:"start,omitempty"`
	EndDate            *time.Time `json:"endDate,omitempty" yaml:"end,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty" yaml:"due,omitempty"`
	State              TaskState  `json:"state" yaml:"state"`
	Difficulty         Difficulty `json:"difficulty" yaml:"difficulty"`
	AssignedEmployeeID int64      `json:"assignedEmployeeId" yaml:"employee"`
	ProjectRef         *string    `json:"project,omitempty" yaml:"project,omitempty"`
}

// TaskPatch carries the fields a reschedule may change.
type TaskPatch struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	Difficulty         Difficulty `json:"difficulty"`
	State              TaskState  `json:"state"`
	AssignedEmployeeID int64      `json:"assignedEmployeeId"`
	ProjectRef         *string    `json:"project,omitempty"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            time.Time  `json:"endDate"`
	DueDate            time.Time  `json:"dueDate"`
}

// Scope narrows task and employee listings. Zero values mean "everything".
type Scope struct {
	DepartmentID int64
	ProjectRef   string
}
