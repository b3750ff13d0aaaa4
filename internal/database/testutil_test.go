package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
)

type TestDataBuilder struct {
	t           *testing.T
	ctx         context.Context
	db          *Database
	departments []int64
	employees   []int64
	tasks       []int64
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	return &TestDataBuilder{t: t, ctx: ctx, db: db}
}

func (b *TestDataBuilder) WithDepartment(name string) *TestDataBuilder {
	b.t.Helper()
	id, err := b.db.EnsureDepartment(b.ctx, name)
	if err != nil {
		b.t.Fatalf("EnsureDepartment failed: %v", err)
	}
	b.departments = append(b.departments, id)
	return b
}

func (b *TestDataBuilder) WithEmployees(count int) *TestDataBuilder {
	b.t.Helper()
	var dept int64
	if len(b.departments) > 0 {
		dept = b.departments[len(b.departments)-1]
	}
	for i := 0; i < count; i++ {
		id, err := b.db.AddEmployee(b.ctx, models.Employee{
			FirstName: fmt.Sprintf("Emp%d", len(b.employees)+1),
			LastName:  "Test",
		}, dept)
		if err != nil {
			b.t.Fatalf("AddEmployee failed: %v", err)
		}
		b.employees = append(b.employees, id)
	}
	return b
}

func (b *TestDataBuilder) WithTasks(perEmployee int) *TestDataBuilder {
	b.t.Helper()
	if len(b.employees) == 0 {
		b.WithEmployees(1)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	for ei, empID := range b.employees {
		for i := 0; i < perEmployee; i++ {
			start := base.AddDate(0, 0, i*3)
			task, err := b.db.CreateTask(b.ctx, models.TaskInput{
				Title:              fmt.Sprintf("Task %d-%d", ei+1, i+1),
				AssignedEmployeeID: empID,
				StartDate:          start,
				EndDate:            start.AddDate(0, 0, 1),
				DueDate:            start.AddDate(0, 0, 1),
			})
			if err != nil {
				b.t.Fatalf("CreateTask failed: %v", err)
			}
			b.tasks = append(b.tasks, task.ID)
		}
	}
	return b
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}
