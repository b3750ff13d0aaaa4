package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/crewboard/internal/models"
)

// EnsureDepartment returns the id of the named department, creating it.
func (d *Database) EnsureDepartment(ctx context.Context, name string) (int64, error) {
	if _, err := d.DB.ExecContext(ctx, "INSERT OR IGNORE INTO departments (name) VALUES (?)", name); err != nil {
		return 0, err
	}
	var id int64
	err := d.DB.QueryRowContext(ctx, "SELECT id FROM departments WHERE name = ?", name).Scan(&id)
	return id, err
}

// AddEmployee inserts an employee, optionally in a department.
func (d *Database) AddEmployee(ctx context.Context, e models.Employee, departmentID int64) (int64, error) {
	var dept sql.NullInt64
	if departmentID > 0 {
		dept = sql.NullInt64{Int64: departmentID, Valid: true}
	}
	res, err := d.DB.ExecContext(ctx,
		`INSERT INTO employees (first_name, last_name, avatar, role_title, department_id) VALUES (?, ?, ?, ?, ?)`,
		e.FirstName, e.LastName, nullableString(e.AvatarRef), nullableString(e.RoleTitle), dept)
	if err != nil {
		return 0, wrapErr(EntityEmployee, "create", 0, err)
	}
	id, err := res.LastInsertId()
	return id, wrapErr(EntityEmployee, "create", 0, err)
}

// ListEmployees returns employees ordered by name, filtered by department.
func (d *Database) ListEmployees(ctx context.Context, scope models.Scope) ([]models.Employee, error) {
	query := `SELECT id, first_name, last_name, avatar, role_title FROM employees`
	var args []interface{}
	if scope.DepartmentID > 0 {
		query += ` WHERE department_id = ?`
		args = append(args, scope.DepartmentID)
	}
	query += ` ORDER BY last_name ASC, first_name ASC, id ASC`

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(EntityEmployee, "list", 0, err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		var avatar, role sql.NullString
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &avatar, &role); err != nil {
			return nil, wrapErr(EntityEmployee, "list", 0, err)
		}
		e.AvatarRef = stringPtr(avatar)
		e.RoleTitle = stringPtr(role)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(EntityEmployee, "list", 0, err)
	}
	return out, nil
}

func (d *Database) employeeExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := d.DB.QueryRowContext(ctx, "SELECT 1 FROM employees WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
