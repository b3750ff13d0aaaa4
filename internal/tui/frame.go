package tui

import (
	"math"

	"github.com/akyairhashvil/crewboard/internal/config"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/akyairhashvil/crewboard/internal/util"
)

const footerLines = 2

// lineRef says what a board line shows. row is an index into the layout's
// rows; -1 marks the divider under a row.
type lineRef struct {
	row  int
	lane int
}

func (r lineRef) divider() bool { return r.row < 0 }

// frame maps the pixel layout onto terminal cells for one screen.
type frame struct {
	layout    timeline.BoardLayout
	rows      []timeline.EmployeeRow
	lines     []lineRef
	totalCols int
	viewCols  int
	viewLines int
	scrollX   int
	scrollY   int
}

func newFrame(layout timeline.BoardLayout, rows []timeline.EmployeeRow, width, height, scrollX, scrollY int) frame {
	f := frame{layout: layout, rows: rows}
	for i, r := range layout.Rows {
		for lane := 0; lane < r.LaneCount; lane++ {
			f.lines = append(f.lines, lineRef{row: i, lane: lane})
		}
		f.lines = append(f.lines, lineRef{row: -1})
	}
	f.totalCols = int(math.Ceil(layout.Width / config.CellWidthPx))
	f.viewCols = max(0, width-config.GutterWidth)
	f.viewLines = max(0, height-config.HeaderLines-footerLines)
	f.scrollX = util.Clamp(scrollX, 0, max(0, f.totalCols-f.viewCols))
	f.scrollY = util.Clamp(scrollY, 0, max(0, len(f.lines)-f.viewLines))
	return f
}

// pointerPx is the board pixel under screen column x, measured at the cell
// center. Columns left of the timeline give negative pixels so a drag can
// run past the window edge.
func (f frame) pointerPx(x int) float64 {
	col := x - config.GutterWidth + f.scrollX
	return float64(col)*config.CellWidthPx + config.CellWidthPx/2
}

// column is the timeline column under screen column x.
func (f frame) column(x int) (int, bool) {
	if x < config.GutterWidth || x >= config.GutterWidth+f.viewCols {
		return 0, false
	}
	return x - config.GutterWidth + f.scrollX, true
}

// lineAt is the board line under screen row y.
func (f frame) lineAt(y int) (lineRef, bool) {
	if y < config.HeaderLines || y >= config.HeaderLines+f.viewLines {
		return lineRef{}, false
	}
	idx := y - config.HeaderLines + f.scrollY
	if idx >= len(f.lines) {
		return lineRef{}, false
	}
	return f.lines[idx], true
}

// barCells is the inclusive column span a bar covers.
func barCells(b timeline.BarLayout) (int, int) {
	start := int(math.Floor(b.Left / config.CellWidthPx))
	end := int(math.Ceil(b.Right()/config.CellWidthPx)) - 1
	return start, max(start, end)
}

// barAt finds the bar drawn at a timeline column in a row lane.
func (f frame) barAt(ref lineRef, col int) (timeline.BarLayout, bool) {
	if ref.divider() || ref.row >= len(f.layout.Rows) {
		return timeline.BarLayout{}, false
	}
	for _, b := range f.layout.Rows[ref.row].Bars {
		if b.Lane != ref.lane {
			continue
		}
		if s, e := barCells(b); col >= s && col <= e {
			return b, true
		}
	}
	return timeline.BarLayout{}, false
}

// gestureAt decides which gesture a press on a bar starts. The pointer is
// pulled inside the bar first because cell rounding can put a cell center a
// few pixels outside it.
func gestureAt(b timeline.BarLayout, px float64) timeline.GestureKind {
	px = math.Max(b.Left, math.Min(px, b.Right()-0.5))
	kind, _ := b.HitGesture(px, config.HandleWidth)
	return kind
}

func (f frame) todayCol() (int, bool) {
	if !f.layout.ShowToday {
		return 0, false
	}
	return int(math.Floor(f.layout.TodayX / config.CellWidthPx)), true
}
