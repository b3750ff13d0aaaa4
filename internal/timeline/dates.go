// Package timeline holds the scheduling board: calendar math, lane packing,
// drag/resize gestures and the pixel layout of employee rows and task bars.
// Nothing in here touches the terminal or the backend.
package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/config"
)

// ViewMode selects the length and density of the visible window.
type ViewMode int

const (
	ViewDay   ViewMode = config.ViewDay
	ViewWeek  ViewMode = config.ViewWeek
	ViewMonth ViewMode = config.ViewMonth
	ViewYear  ViewMode = config.ViewYear
)

// ViewModes lists the modes from shortest to longest window.
var ViewModes = []ViewMode{ViewDay, ViewWeek, ViewMonth, ViewYear}

func (v ViewMode) String() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	case ViewMonth:
		return "month"
	case ViewYear:
		return "year"
	}
	return fmt.Sprintf("ViewMode(%d)", int(v))
}

// ParseViewMode accepts the lowercase names returned by String.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return ViewDay, nil
	case "week", "w":
		return ViewWeek, nil
	case "month", "m":
		return ViewMonth, nil
	case "year", "y":
		return ViewYear, nil
	}
	return ViewWeek, fmt.Errorf("unknown view mode %q", s)
}

// PixelsPerDay returns the density for the mode.
func (v ViewMode) PixelsPerDay() int {
	if ppd, ok := config.PixelsPerDay[int(v)]; ok {
		return ppd
	}
	return config.PixelsPerDay[config.ViewWeek]
}

// Next cycles to the next longer mode, wrapping from year to day.
func (v ViewMode) Next() ViewMode {
	return ViewModes[(int(v)+1)%len(ViewModes)]
}

// Midnight drops the time-of-day, keeping the location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DiffDays returns b - a in whole calendar days. Both dates are reduced to
// their calendar day first, so DST transitions never produce off-by-one.
func DiffDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// AddDays shifts d by n calendar days and returns midnight of that day.
func AddDays(d time.Time, n int) time.Time {
	return Midnight(d).AddDate(0, 0, n)
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return AddDays(d, -offset)
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ViewWindow is the visible date range and its horizontal density.
type ViewWindow struct {
	Mode         ViewMode
	Start        time.Time
	NumDays      int
	PixelsPerDay int
}

// ComputeViewWindow derives the window containing ref for the given mode.
func ComputeViewWindow(ref time.Time, mode ViewMode) ViewWindow {
	w := ViewWindow{Mode: mode, PixelsPerDay: mode.PixelsPerDay()}
	y, m, _ := ref.Date()
	switch mode {
	case ViewDay:
		w.Start = Midnight(ref)
		w.NumDays = 1
	case ViewMonth:
		w.Start = time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
		w.NumDays = DaysInMonth(y, m)
	case ViewYear:
		w.Start = time.Date(y, time.January, 1, 0, 0, 0, 0, ref.Location())
		w.NumDays = 365
		if IsLeapYear(y) {
			w.NumDays = 366
		}
	default:
		w.Mode = ViewWeek
		w.Start = StartOfWeek(ref)
		w.NumDays = 7
	}
	return w
}

// End returns the last day inside the window.
func (w ViewWindow) End() time.Time {
	return AddDays(w.Start, w.NumDays-1)
}

// DayOffset returns how many days d lies after the window start.
func (w ViewWindow) DayOffset(d time.Time) int {
	return DiffDays(w.Start, d)
}

// Contains reports whether d falls on a day inside the window.
func (w ViewWindow) Contains(d time.Time) bool {
	off := w.DayOffset(d)
	return off >= 0 && off < w.NumDays
}

// Width is the full pixel width of the window.
func (w ViewWindow) Width() float64 {
	return DayToPixel(w.NumDays, w.PixelsPerDay)
}

// DateAt maps a pixel offset from the window's left edge to a date.
func (w ViewWindow) DateAt(px float64) time.Time {
	return AddDays(w.Start, PixelToDay(px, w.PixelsPerDay))
}

// Shift moves ref by dir whole windows of the given mode.
func Shift(ref time.Time, mode ViewMode, dir int) time.Time {
	switch mode {
	case ViewDay:
		return AddDays(ref, dir)
	case ViewMonth:
		y, m, _ := ref.Date()
		return time.Date(y, m+time.Month(dir), 1, 0, 0, 0, 0, ref.Location())
	case ViewYear:
		return time.Date(ref.Year()+dir, time.January, 1, 0, 0, 0, 0, ref.Location())
	}
	return AddDays(ref, 7*dir)
}

// DayToPixel converts a day offset to a pixel offset.
func DayToPixel(dayOffset, pixelsPerDay int) float64 {
	return float64(dayOffset * pixelsPerDay)
}

// PixelToDay converts a pixel offset to the day column containing it.
func PixelToDay(px float64, pixelsPerDay int) int {
	if pixelsPerDay <= 0 {
		return 0
	}
	return int(math.Floor(px / float64(pixelsPerDay)))
}
