package database

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML layout accepted by Seed.
type Fixture struct {
	Departments []FixtureDepartment `yaml:"departments"`
}

type FixtureDepartment struct {
	Name      string            `yaml:"name"`
	Employees []FixtureEmployee `yaml:"employees"`
}

type FixtureEmployee struct {
	FirstName string        `yaml:"first_name"`
	LastName  string        `yaml:"last_name"`
	Role      string        `yaml:"role"`
	Avatar    string        `yaml:"avatar"`
	Tasks     []FixtureTask `yaml:"tasks"`
}

type FixtureTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Due         string `yaml:"due"`
	State       string `yaml:"state"`
	Difficulty  string `yaml:"difficulty"`
	Project     string `yaml:"project"`
}

// SeedResult counts what Seed inserted.
type SeedResult struct {
	Departments int
	Employees   int
	Tasks       int
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// Seed inserts every department, employee and task of the fixture.
func (d *Database) Seed(ctx context.Context, f Fixture) (SeedResult, error) {
	var res SeedResult
	for _, dept := range f.Departments {
		deptID, err := d.EnsureDepartment(ctx, dept.Name)
		if err != nil {
			return res, fmt.Errorf("department %q: %w", dept.Name, err)
		}
		res.Departments++
		for _, fe := range dept.Employees {
			emp := models.Employee{FirstName: fe.FirstName, LastName: fe.LastName}
			if fe.Role != "" {
				emp.RoleTitle = &fe.Role
			}
			if fe.Avatar != "" {
				emp.AvatarRef = &fe.Avatar
			}
			empID, err := d.AddEmployee(ctx, emp, deptID)
			if err != nil {
				return res, err
			}
			res.Employees++
			for _, ft := range fe.Tasks {
				in, err := ft.input(empID)
				if err != nil {
					return res, fmt.Errorf("task %q: %w", ft.Title, err)
				}
				if _, err := d.CreateTask(ctx, in); err != nil {
					return res, err
				}
				res.Tasks++
			}
		}
	}
	return res, nil
}

func (ft FixtureTask) input(employeeID int64) (models.TaskInput, error) {
	start, err := parseFixtureDate(ft.Start)
	if err != nil {
		return models.TaskInput{}, err
	}
	end := start
	if ft.End != "" {
		if end, err = parseFixtureDate(ft.End); err != nil {
			return models.TaskInput{}, err
		}
	}
	due := end
	if ft.Due != "" {
		if due, err = parseFixtureDate(ft.Due); err != nil {
			return models.TaskInput{}, err
		}
	}
	in := models.TaskInput{
		Title:              ft.Title,
		Difficulty:         models.Difficulty(strings.ToLower(ft.Difficulty)),
		State:              models.TaskState(strings.ToLower(ft.State)),
		AssignedEmployeeID: employeeID,
		StartDate:          start,
		EndDate:            end,
		DueDate:            due,
	}
	if ft.Description != "" {
		desc := ft.Description
		in.Description = &desc
	}
	if ft.Project != "" {
		project := ft.Project
		in.ProjectRef = &project
	}
	return in, nil
}

func parseFixtureDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
}
