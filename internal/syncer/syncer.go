// Package syncer pushes committed board changes to the backend without
// blocking the UI, and fetches the snapshots the board reconciles against.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akyairhashvil/crewboard/internal/config"
	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/sirupsen/logrus"
)

// Source lists the backend's canonical data.
type Source interface {
	ListTasks(ctx context.Context, scope models.Scope) ([]models.Task, error)
	ListEmployees(ctx context.Context, scope models.Scope) ([]models.Employee, error)
}

// Mutator applies task changes on the backend.
//
//go:generate mockgen -source=syncer.go -destination=mock_mutator_test.go -package=syncer
type Mutator interface {
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error
	CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error)
}

// Backend is a full backend collaborator.
type Backend interface {
	Source
	Mutator
}

// Op names a kind of sync job.
type Op string

const (
	OpReschedule Op = "reschedule"
	OpCreate     Op = "create"
)

// Event reports a finished job. Err is informational; local state is never
// rolled back.
type Event struct {
	Op         Op
	ExternalID int64
	LocalID    string
	Err        error
}

type job struct {
	op       Op
	id       int64
	localID  string
	patch    models.TaskPatch
	input    models.TaskInput
	queuedAt time.Time
}

// Adapter queues board changes and drains them in order on one goroutine.
type Adapter struct {
	mutator Mutator
	timeout time.Duration
	log     *logrus.Entry

	jobs   chan job
	events chan Event
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(a *Adapter) { a.log = l.WithField("component", "syncer") }
}

// WithQueueSize sets how many jobs may wait before new ones are dropped.
func WithQueueSize(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.jobs = make(chan job, n)
		}
	}
}

// New starts an adapter over m.
func New(m Mutator, opts ...Option) *Adapter {
	a := &Adapter{
		mutator: m,
		timeout: config.APITimeout,
		log:     logrus.StandardLogger().WithField("component", "syncer"),
		jobs:    make(chan job, config.SyncQueueSize),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.events = make(chan Event, cap(a.jobs))
	a.wg.Add(1)
	go a.run()
	return a
}

var _ timeline.Syncer = (*Adapter)(nil)

// Events delivers one Event per finished job. It is closed by Close.
func (a *Adapter) Events() <-chan Event {
	return a.events
}

// OnTaskRescheduled queues an update of the task's dates.
func (a *Adapter) OnTaskRescheduled(externalID int64, start, end time.Time) {
	s, e := start, end
	a.enqueue(job{
		op:    OpReschedule,
		id:    externalID,
		patch: models.TaskPatch{StartDate: &s, EndDate: &e},
	})
}

// OnTaskCreated queues creation of a task for the employee.
func (a *Adapter) OnTaskCreated(employeeExternalID int64, task timeline.GanttTask) {
	a.enqueue(job{
		op:      OpCreate,
		localID: task.ID,
		input:   InputFor(employeeExternalID, task),
	})
}

// InputFor builds the create payload for a board task.
func InputFor(employeeExternalID int64, task timeline.GanttTask) models.TaskInput {
	in := models.TaskInput{
		Title:              task.Title,
		Difficulty:         task.Difficulty,
		State:              models.StateTodo,
		AssignedEmployeeID: employeeExternalID,
		StartDate:          task.Start,
		EndDate:            task.End,
		DueDate:            task.End,
	}
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if task.Description != "" {
		desc := task.Description
		in.Description = &desc
	}
	if task.ProjectRef != "" {
		ref := task.ProjectRef
		in.ProjectRef = &ref
	}
	return in
}

func (a *Adapter) enqueue(j job) {
	j.queuedAt = time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		a.log.WithField("op", j.op).Warn("sync adapter closed, dropping job")
		return
	}
	select {
	case a.jobs <- j:
	default:
		a.log.WithFields(logrus.Fields{"op": j.op, "task": j.id}).Warn("sync queue full, dropping job")
	}
}

func (a *Adapter) run() {
	defer a.wg.Done()
	for j := range a.jobs {
		ev := a.process(j)
		select {
		case a.events <- ev:
		default:
			a.log.WithFields(logrus.Fields{"op": ev.Op, "task": ev.ExternalID, "local": ev.LocalID}).
				Warn("sync event buffer full, dropping event")
		}
	}
}

func (a *Adapter) process(j job) Event {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	ev := Event{Op: j.op, ExternalID: j.id, LocalID: j.localID}
	fields := logrus.Fields{"op": j.op, "task": j.id, "queued": time.Since(j.queuedAt).Round(time.Millisecond)}
	switch j.op {
	case OpReschedule:
		ev.Err = a.mutator.UpdateTask(ctx, j.id, j.patch)
	case OpCreate:
		created, err := a.mutator.CreateTask(ctx, j.input)
		ev.Err = err
		ev.ExternalID = created.ID
		fields["task"] = created.ID
		fields["local"] = j.localID
	default:
		ev.Err = fmt.Errorf("unknown sync op %q", j.op)
	}
	if ev.Err != nil {
		a.log.WithFields(fields).WithError(ev.Err).Error("sync failed")
	} else {
		a.log.WithFields(fields).Debug("sync done")
	}
	return ev
}

// Close stops accepting jobs, waits for queued ones and closes Events.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.jobs)
	a.mu.Unlock()
	a.wg.Wait()
	close(a.events)
}

// Snapshot is one consistent read of the backend.
type Snapshot struct {
	Tasks     []models.Task
	Employees []models.Employee
}

// Fetch reads employees and tasks for the scope.
func Fetch(ctx context.Context, src Source, scope models.Scope) (Snapshot, error) {
	employees, err := src.ListEmployees(ctx, scope)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list employees: %w", err)
	}
	tasks, err := src.ListTasks(ctx, scope)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list tasks: %w", err)
	}
	return Snapshot{Tasks: tasks, Employees: employees}, nil
}
