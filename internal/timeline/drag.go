package timeline

import (
	"errors"
	"math"
	"time"
)

var (
	ErrGestureActive = errors.New("a gesture is already in progress")
	ErrNoGesture     = errors.New("no gesture in progress")
)

// GestureKind identifies what a pointer drag does to a bar.
type GestureKind int

const (
	GestureMove GestureKind = iota
	GestureResizeStart
	GestureResizeEnd
)

func (k GestureKind) String() string {
	switch k {
	case GestureResizeStart:
		return "resize-start"
	case GestureResizeEnd:
		return "resize-end"
	}
	return "move"
}

// Apply shifts [start, end] by delta days the way this gesture does. Resizes
// clamp so the range never inverts; the shortest result is a single day.
func (k GestureKind) Apply(start, end time.Time, delta int) (time.Time, time.Time) {
	duration := DiffDays(start, end)
	if duration < 0 {
		duration = 0
	}
	switch k {
	case GestureResizeStart:
		return AddDays(start, min(delta, duration)), Midnight(end)
	case GestureResizeEnd:
		return Midnight(start), AddDays(end, max(delta, -duration))
	}
	return AddDays(start, delta), AddDays(end, delta)
}

// DragState is the live record of one pointer gesture.
type DragState struct {
	TaskID        string
	RowID         string
	Kind          GestureKind
	OriginalStart time.Time
	OriginalEnd   time.Time
	StartX        float64
	DeltaDays     int
}

// Preview returns the dates the bar shows while the gesture is live.
func (s DragState) Preview() (time.Time, time.Time) {
	return s.Kind.Apply(s.OriginalStart, s.OriginalEnd, s.DeltaDays)
}

// DragResult describes how a gesture ended.
type DragResult struct {
	TaskID    string
	RowID     string
	Kind      GestureKind
	DeltaDays int
	Start     time.Time
	End       time.Time
	// Committed is false for a zero-delta release, which callers treat as a
	// click on the bar.
	Committed bool
}

// DragController tracks at most one gesture. Idle -> Dragging -> Idle.
type DragController struct {
	state *DragState
}

// Active reports whether a gesture is in progress.
func (c *DragController) Active() bool {
	return c.state != nil
}

// State returns a copy of the live gesture.
func (c *DragController) State() (DragState, bool) {
	if c.state == nil {
		return DragState{}, false
	}
	return *c.state, true
}

// Begin starts a gesture at pointer position x.
func (c *DragController) Begin(kind GestureKind, taskID, rowID string, start, end time.Time, x float64) error {
	if c.state != nil {
		return ErrGestureActive
	}
	c.state = &DragState{
		TaskID:        taskID,
		RowID:         rowID,
		Kind:          kind,
		OriginalStart: start,
		OriginalEnd:   end,
		StartX:        x,
	}
	return nil
}

// Update records a pointer move to x. It returns true when the whole-day delta
// changed and the preview needs a redraw.
func (c *DragController) Update(x float64, pixelsPerDay int) bool {
	if c.state == nil || pixelsPerDay <= 0 {
		return false
	}
	delta := int(math.Round((x - c.state.StartX) / float64(pixelsPerDay)))
	if delta == c.state.DeltaDays {
		return false
	}
	c.state.DeltaDays = delta
	return true
}

// Preview returns the live dates of the dragged bar.
func (c *DragController) Preview() (time.Time, time.Time, bool) {
	if c.state == nil {
		return time.Time{}, time.Time{}, false
	}
	start, end := c.state.Preview()
	return start, end, true
}

// Release ends the gesture and reports its outcome.
func (c *DragController) Release() (DragResult, error) {
	if c.state == nil {
		return DragResult{}, ErrNoGesture
	}
	s := *c.state
	c.state = nil
	res := DragResult{
		TaskID:    s.TaskID,
		RowID:     s.RowID,
		Kind:      s.Kind,
		DeltaDays: s.DeltaDays,
		Start:     s.OriginalStart,
		End:       s.OriginalEnd,
	}
	if s.DeltaDays == 0 {
		return res, nil
	}
	res.Start, res.End = s.Preview()
	res.Committed = true
	return res, nil
}

// Rebase moves the gesture's origin to fresh task dates, keeping the pointer
// delta. It is a no-op when idle.
func (c *DragController) Rebase(start, end time.Time) {
	if c.state == nil {
		return
	}
	c.state.OriginalStart = start
	c.state.OriginalEnd = end
}

// Cancel drops the gesture without producing a result.
func (c *DragController) Cancel() bool {
	if c.state == nil {
		return false
	}
	c.state = nil
	return true
}
