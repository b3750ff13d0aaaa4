package models

import "testing"

func TestTaskStateConstants(t *testing.T) {
	if StateTodo != "todo" {
		t.Fatalf("StateTodo = %q", StateTodo)
	}
	if StateInProgress != "in_progress" {
		t.Fatalf("StateInProgress = %q", StateInProgress)
	}
	if StateDone != "done" {
		t.Fatalf("StateDone = %q", StateDone)
	}
}

func TestTaskZeroValues(t *testing.T) {
	var task Task
	if task.StartDate != nil || task.EndDate != nil || task.DueDate != nil {
		t.Fatalf("expected nil date fields by default")
	}
	if task.Description != nil || task.ProjectRef != nil {
		t.Fatalf("expected nil optional string fields by default")
	}
}

func TestEmployeeFullName(t *testing.T) {
	cases := []struct {
		emp  Employee
		want string
	}{
		{Employee{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{Employee{FirstName: "Ada"}, "Ada"},
		{Employee{LastName: "Lovelace"}, "Lovelace"},
		{Employee{}, ""},
	}
	for _, tc := range cases {
		if got := tc.emp.FullName(); got != tc.want {
			t.Fatalf("FullName(%+v) = %q, want %q", tc.emp, got, tc.want)
		}
	}
}
