package timeline

import (
	"time"

	"github.com/akyairhashvil/crewboard/internal/config"
)

// Geometry holds the fixed sizes used to lay out rows and bars, in pixels.
type Geometry struct {
	BarHeight     float64
	BarGap        float64
	MinRowHeight  float64
	InnerMargin   float64
	MinBarWidth   float64
	LabelMinWidth float64
}

// DefaultGeometry returns the configured sizes.
func DefaultGeometry() Geometry {
	return Geometry{
		BarHeight:     config.BarHeight,
		BarGap:        config.BarGap,
		MinRowHeight:  config.MinRowHeight,
		InnerMargin:   config.InnerMargin,
		MinBarWidth:   config.MinBarWidth,
		LabelMinWidth: config.LabelMinWidth,
	}
}

// LanePitch is the vertical distance between two lanes.
func (g Geometry) LanePitch() float64 {
	return g.BarHeight + g.BarGap
}

// RowHeight is the height of a row holding laneCount lanes.
func (g Geometry) RowHeight(laneCount int) float64 {
	return max(g.MinRowHeight, float64(laneCount)*g.LanePitch()+g.BarGap)
}

// BarLayout is the placement of one task bar inside its row.
type BarLayout struct {
	TaskID string
	Lane   int
	Left   float64
	Width  float64
	Top    float64 // relative to the row top
	Height float64
	// VisibleStart and VisibleEnd are the task dates clipped to the window.
	VisibleStart time.Time
	VisibleEnd   time.Time
	ClippedLeft  bool
	ClippedRight bool
	ShowLabel    bool
}

// Right is the pixel just past the bar.
func (b BarLayout) Right() float64 {
	return b.Left + b.Width
}

// HitGesture maps a pointer x onto the bar. The outer handle-wide strips
// resize the matching edge, the rest moves the whole bar. Narrow bars split
// into thirds so all three gestures stay reachable.
func (b BarLayout) HitGesture(px, handle float64) (GestureKind, bool) {
	if px < b.Left || px >= b.Right() {
		return GestureMove, false
	}
	handle = min(handle, b.Width/3)
	switch {
	case px < b.Left+handle:
		return GestureResizeStart, true
	case px >= b.Right()-handle:
		return GestureResizeEnd, true
	}
	return GestureMove, true
}

// RowLayout is the placement of one employee row.
type RowLayout struct {
	RowID     string
	Top       float64
	Height    float64
	LaneCount int
	Bars      []BarLayout
}

// LaneAt maps a y offset inside the row to a lane index.
func (r RowLayout) LaneAt(y float64, g Geometry) int {
	lane := int((y - g.BarGap/2) / g.LanePitch())
	return max(0, min(lane, r.LaneCount-1))
}

// BarAt finds the bar in the given lane under pointer x.
func (r RowLayout) BarAt(px float64, lane int) (BarLayout, bool) {
	for _, b := range r.Bars {
		if b.Lane == lane && px >= b.Left && px < b.Right() {
			return b, true
		}
	}
	return BarLayout{}, false
}

// BoardLayout is the full geometry of the board for one window.
type BoardLayout struct {
	Window    ViewWindow
	Geometry  Geometry
	Width     float64
	Height    float64
	Rows      []RowLayout
	TodayX    float64
	ShowToday bool
}

// RowAt returns the index of the row under y.
func (l BoardLayout) RowAt(y float64) (int, bool) {
	for i, r := range l.Rows {
		if y >= r.Top && y < r.Top+r.Height {
			return i, true
		}
	}
	return -1, false
}

// Layout computes the geometry of rows and bars for the window. Tasks that do
// not intersect the window get no bar.
func Layout(window ViewWindow, rows []EmployeeRow, today time.Time, g Geometry) BoardLayout {
	ppd := window.PixelsPerDay
	out := BoardLayout{
		Window:   window,
		Geometry: g,
		Width:    window.Width(),
		Rows:     make([]RowLayout, 0, len(rows)),
	}
	top := 0.0
	for _, row := range rows {
		lanes := row.LaneCount()
		rl := RowLayout{
			RowID:     row.ID,
			Top:       top,
			Height:    g.RowHeight(lanes),
			LaneCount: lanes,
		}
		for _, t := range row.Tasks {
			bar, ok := layoutBar(window, t, ppd, g)
			if ok {
				rl.Bars = append(rl.Bars, bar)
			}
		}
		out.Rows = append(out.Rows, rl)
		top += rl.Height
	}
	out.Height = top
	if window.Contains(today) {
		out.ShowToday = true
		out.TodayX = DayToPixel(window.DayOffset(today), ppd) + float64(ppd)/2
	}
	return out
}

func layoutBar(window ViewWindow, t GanttTask, ppd int, g Geometry) (BarLayout, bool) {
	visStart, visEnd := t.Start, t.End
	clippedLeft, clippedRight := false, false
	if DiffDays(visStart, window.Start) > 0 {
		visStart = window.Start
		clippedLeft = true
	}
	if DiffDays(window.End(), visEnd) > 0 {
		visEnd = window.End()
		clippedRight = true
	}
	days := DiffDays(visStart, visEnd) + 1
	if days <= 0 {
		return BarLayout{}, false
	}
	width := max(g.MinBarWidth, DayToPixel(days, ppd)-2*g.InnerMargin)
	return BarLayout{
		TaskID:       t.ID,
		Lane:         t.Lane,
		Left:         DayToPixel(window.DayOffset(visStart), ppd) + g.InnerMargin,
		Width:        width,
		Top:          float64(t.Lane)*g.LanePitch() + g.BarGap,
		Height:       g.BarHeight,
		VisibleStart: Midnight(visStart),
		VisibleEnd:   Midnight(visEnd),
		ClippedLeft:  clippedLeft,
		ClippedRight: clippedRight,
		ShowLabel:    width >= g.LabelMinWidth,
	}, true
}
