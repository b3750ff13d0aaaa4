package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/akyairhashvil/crewboard/internal/models"
)

const taskColumns = `id, title, description, start_date, end_date, due_date, state, difficulty, employee_id, project`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var desc, start, end, due, project sql.NullString
	var state, difficulty string
	if err := row.Scan(&t.ID, &t.Title, &desc, &start, &end, &due, &state, &difficulty, &t.AssignedEmployeeID, &project); err != nil {
		return t, err
	}
	t.Description = stringPtr(desc)
	t.StartDate = datePtr(start)
	t.EndDate = datePtr(end)
	t.DueDate = datePtr(due)
	t.State = models.TaskState(state)
	t.Difficulty = models.Difficulty(difficulty)
	t.ProjectRef = stringPtr(project)
	return t, nil
}

// ListTasks returns tasks, optionally limited to a department's employees or
// a project.
func (d *Database) ListTasks(ctx context.Context, scope models.Scope) ([]models.Task, error) {
	var where []string
	var args []interface{}
	if scope.DepartmentID > 0 {
		where = append(where, "employee_id IN (SELECT id FROM employees WHERE department_id = ?)")
		args = append(args, scope.DepartmentID)
	}
	if scope.ProjectRef != "" {
		where = append(where, "project = ?")
		args = append(args, scope.ProjectRef)
	}
	query := "SELECT " + taskColumns + " FROM tasks"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(EntityTask, "list", 0, err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrapErr(EntityTask, "list", 0, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(EntityTask, "list", 0, err)
	}
	return out, nil
}

// GetTask loads one task.
func (d *Database) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := d.DB.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return t, wrapErr(EntityTask, "get", id, err)
}

// UpdateTask applies the non-nil fields of patch.
func (d *Database) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr(EntityTask, "update", id, err)
	}
	current, err := scanTask(tx.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return wrapErr(EntityTask, "update", id, rollbackWithLog(tx, ErrNotFound))
	}
	if err != nil {
		return wrapErr(EntityTask, "update", id, rollbackWithLog(tx, err))
	}
	start, end := current.StartDate, current.EndDate
	if patch.StartDate != nil {
		start = patch.StartDate
	}
	if patch.EndDate != nil {
		end = patch.EndDate
	}
	startCol, endCol := nullableDate(start), nullableDate(end)
	if startCol.Valid && endCol.Valid && endCol.String < startCol.String {
		return wrapErr(EntityTask, "update", id, rollbackWithLog(tx, ErrInvalidRange))
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		startCol, endCol, id)
	if err != nil {
		return wrapErr(EntityTask, "update", id, rollbackWithLog(tx, err))
	}
	return wrapErr(EntityTask, "update", id, tx.Commit())
}

// CreateTask inserts a task and returns it as stored.
func (d *Database) CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Task{}, wrapErr(EntityTask, "create", 0, errors.New("title is required"))
	}
	if nullableDate(&in.EndDate).String < nullableDate(&in.StartDate).String {
		return models.Task{}, wrapErr(EntityTask, "create", 0, ErrInvalidRange)
	}
	ok, err := d.employeeExists(ctx, in.AssignedEmployeeID)
	if err != nil {
		return models.Task{}, wrapErr(EntityTask, "create", 0, err)
	}
	if !ok {
		return models.Task{}, wrapErr(EntityTask, "create", 0, ErrUnknownEmployee)
	}
	state := in.State
	if state == "" {
		state = models.StateTodo
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	res, err := d.DB.ExecContext(ctx,
		`INSERT INTO tasks (title, description, start_date, end_date, due_date, state, difficulty, employee_id, project)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(in.Title), nullableString(in.Description),
		nullableDate(&in.StartDate), nullableDate(&in.EndDate), nullableDate(&in.DueDate),
		string(state), string(difficulty), in.AssignedEmployeeID, nullableString(in.ProjectRef))
	if err != nil {
		return models.Task{}, wrapErr(EntityTask, "create", 0, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, wrapErr(EntityTask, "create", 0, err)
	}
	return d.GetTask(ctx, id)
}
