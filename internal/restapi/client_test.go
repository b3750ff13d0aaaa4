package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
)

func TestListTasksSendsScopeAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("departmentId"); got != "3" {
			t.Errorf("departmentId = %q", got)
		}
		if got := r.URL.Query().Get("project"); got != "Apollo" {
			t.Errorf("project = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]models.Task{{ID: 1, Title: "A", AssignedEmployeeID: 2}})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", "secret")
	tasks, err := c.ListTasks(context.Background(), models.Scope{DepartmentID: 3, ProjectRef: "Apollo"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "A" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
}

func TestListEmployeesIgnoresProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query, got %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]models.Employee{{ID: 5, FirstName: "Lin"}})
	}))
	defer srv.Close()

	emps, err := New(srv.URL, "").ListEmployees(context.Background(), models.Scope{ProjectRef: "x"})
	if err != nil || len(emps) != 1 || emps[0].FirstName != "Lin" {
		t.Fatalf("ListEmployees = %+v, %v", emps, err)
	}
}

func TestUpdateTaskPatchesDates(t *testing.T) {
	start := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/tasks/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var patch models.TaskPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Errorf("decode: %v", err)
		}
		if patch.StartDate == nil || !patch.StartDate.Equal(start) || !patch.EndDate.Equal(end) {
			t.Errorf("unexpected patch %+v", patch)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL, "").UpdateTask(context.Background(), 42, models.TaskPatch{StartDate: &start, EndDate: &end}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
}

func TestCreateTaskReturnsStoredTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.TaskInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Task{ID: 77, Title: in.Title, AssignedEmployeeID: in.AssignedEmployeeID})
	}))
	defer srv.Close()

	task, err := New(srv.URL, "").CreateTask(context.Background(), models.TaskInput{Title: "New", AssignedEmployeeID: 9})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != 77 || task.AssignedEmployeeID != 9 {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid dates", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := New(srv.URL, "").UpdateTask(context.Background(), 1, models.TaskPatch{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected APIError 422, got %v", err)
	}
}
