package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/config"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Cell styles on a rendered board line.
const (
	styleBlank = iota
	styleGrid
	styleToday
	styleBarBlue
	styleBarGreen
	styleBarAmber
	styleBarRed
	styleDragging
	styleCount
)

type cell struct {
	ch    rune
	style int
}

func (m BoardModel) View() string {
	if m.modal.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	f := m.frame()
	lines := []string{
		m.renderHeader(f),
		m.renderScale(f),
		m.theme.Grid.Render(strings.Repeat("─", max(0, m.width))),
	}
	lines = append(lines, m.renderBoard(f)...)
	lines = append(lines, m.renderFooter(f)...)
	return strings.Join(lines, "\n")
}

func (m BoardModel) renderModal() string {
	switch st := m.modal.Current().(type) {
	case *AddTaskState:
		return st.View(m.theme)
	case *TaskDetailState:
		return renderDetail(st, m.theme)
	}
	return ""
}

func (m BoardModel) renderHeader(f frame) string {
	title := fmt.Sprintf(" %s  %s  %s ", strings.ToUpper(config.AppName), strings.ToUpper(m.mode.String()), windowLabel(f.layout.Window))
	line := m.theme.Header.Render(title) + " " + m.theme.Dim.Render(m.keys.Help())
	return ansi.Truncate(line, m.width, "")
}

func (m BoardModel) renderScale(f frame) string {
	buf := []rune(strings.Repeat(" ", f.viewCols))
	window := f.layout.Window
	nextFree := 0
	for i := 0; i < f.viewCols; i++ {
		col := f.scrollX + i
		if col >= f.totalCols {
			break
		}
		if i < nextFree {
			continue
		}
		first, last := daysStartingAt(col, window.PixelsPerDay)
		label, ok := "", false
		for day := first; day <= last && !ok; day++ {
			label, ok = scaleLabel(window.Mode, timeline.AddDays(window.Start, day))
		}
		if !ok {
			continue
		}
		for j, r := range []rune(label) {
			if i+j < len(buf) {
				buf[i+j] = r
			}
		}
		nextFree = i + len([]rune(label)) + 1
	}
	gutter := padRight("", config.GutterWidth)
	return gutter + m.theme.Dim.Render(string(buf))
}

// daysStartingAt returns the day offsets whose first pixel falls inside a
// column. last < first when no day starts there.
func daysStartingAt(col, ppd int) (first, last int) {
	x0 := col * config.CellWidthPx
	first = (x0 + ppd - 1) / ppd
	last = (x0+config.CellWidthPx+ppd-1)/ppd - 1
	return first, last
}

// scaleLabel is the day-scale text for a date, if the mode labels it.
func scaleLabel(mode timeline.ViewMode, d time.Time) (string, bool) {
	switch mode {
	case timeline.ViewDay:
		return d.Format("Monday, Jan 2 2006"), true
	case timeline.ViewWeek:
		return d.Format("Mon 02"), true
	case timeline.ViewMonth:
		return d.Format("02"), true
	case timeline.ViewYear:
		return d.Format("Jan"), d.Day() == 1
	}
	return "", false
}

func (m BoardModel) renderBoard(f frame) []string {
	drag, dragging := m.board.Dragging()
	var out []string
	for i := 0; i < f.viewLines; i++ {
		idx := f.scrollY + i
		if idx >= len(f.lines) {
			break
		}
		ref := f.lines[idx]
		if ref.divider() {
			out = append(out, m.theme.Grid.Render(strings.Repeat("┈", max(0, m.width))))
			continue
		}
		row := f.rows[ref.row]
		var gutter string
		switch ref.lane {
		case 0:
			gutter = m.theme.Gutter.Render(padRight(truncate(row.Name, config.GutterWidth-1), config.GutterWidth))
		case 1:
			gutter = m.theme.Dim.Render(padRight(truncate(row.Role, config.GutterWidth-1), config.GutterWidth))
		default:
			gutter = padRight("", config.GutterWidth)
		}
		var dragID string
		if dragging {
			dragID = drag.TaskID
		}
		out = append(out, gutter+m.renderCells(f.laneCells(ref, dragID)))
	}
	return out
}

// laneCells draws one lane of a row into the visible columns.
func (f frame) laneCells(ref lineRef, dragID string) []cell {
	cells := make([]cell, f.viewCols)
	window := f.layout.Window
	gridded := window.PixelsPerDay >= 2*config.CellWidthPx
	for i := range cells {
		cells[i] = cell{ch: ' ', style: styleBlank}
		col := f.scrollX + i
		if col >= f.totalCols {
			continue
		}
		if first, last := daysStartingAt(col, window.PixelsPerDay); gridded && first <= last && col > 0 {
			cells[i] = cell{ch: '┊', style: styleGrid}
		}
	}
	if col, ok := f.todayCol(); ok {
		if i := col - f.scrollX; i >= 0 && i < len(cells) {
			cells[i] = cell{ch: '│', style: styleToday}
		}
	}

	rl := f.layout.Rows[ref.row]
	tasks := make(map[string]timeline.GanttTask, len(f.rows[ref.row].Tasks))
	for _, t := range f.rows[ref.row].Tasks {
		tasks[t.ID] = t
	}
	for _, bar := range rl.Bars {
		if bar.Lane != ref.lane {
			continue
		}
		task := tasks[bar.TaskID]
		style := barStyleIndex(task.Color)
		if bar.TaskID == dragID {
			style = styleDragging
		}
		start, end := barCells(bar)
		for col := start; col <= end; col++ {
			if i := col - f.scrollX; i >= 0 && i < len(cells) {
				cells[i] = cell{ch: ' ', style: style}
			}
		}
		if !bar.ShowLabel {
			continue
		}
		label := []rune(barLabel(task, bar, end-start))
		for j, r := range label {
			if i := start + 1 + j - f.scrollX; i >= 0 && i < len(cells) {
				cells[i].ch = r
			}
		}
	}
	return cells
}

func barLabel(task timeline.GanttTask, bar timeline.BarLayout, room int) string {
	label := task.Title
	if bar.ClippedLeft {
		label = "‹" + label
	}
	if bar.ClippedRight {
		room--
	}
	label = ansi.Truncate(label, max(0, room-1), config.TruncationSuffix)
	if bar.ClippedRight {
		label = padRight(label, room-1) + "›"
	}
	return label
}

func barStyleIndex(c timeline.ColorCategory) int {
	switch c {
	case timeline.ColorGreen:
		return styleBarGreen
	case timeline.ColorAmber:
		return styleBarAmber
	case timeline.ColorRed:
		return styleBarRed
	}
	return styleBarBlue
}

func (m BoardModel) cellStyles() [styleCount]lipgloss.Style {
	return [styleCount]lipgloss.Style{
		styleBlank:    lipgloss.NewStyle(),
		styleGrid:     m.theme.Grid,
		styleToday:    m.theme.Today,
		styleBarBlue:  m.theme.BarBlue,
		styleBarGreen: m.theme.BarGreen,
		styleBarAmber: m.theme.BarAmber,
		styleBarRed:   m.theme.BarRed,
		styleDragging: m.theme.Dragging,
	}
}

// renderCells styles runs of equal cells together.
func (m BoardModel) renderCells(cells []cell) string {
	styles := m.cellStyles()
	var b strings.Builder
	var run []rune
	current := -1
	flush := func() {
		if len(run) > 0 {
			b.WriteString(styles[current].Render(string(run)))
			run = run[:0]
		}
	}
	for _, c := range cells {
		if c.style != current {
			flush()
			current = c.style
		}
		run = append(run, c.ch)
	}
	flush()
	return b.String()
}

func (m BoardModel) renderFooter(f frame) []string {
	status := m.Message
	style := m.theme.Highlight
	if m.err != nil {
		style = m.theme.Error
	}
	if !m.loaded && status == "" {
		status = "Loading..."
	}

	tasks := 0
	for _, r := range f.layout.Rows {
		tasks += len(r.Bars)
	}
	summary := fmt.Sprintf("%d employees  %d tasks in view", len(f.layout.Rows), tasks)
	if f.totalCols > f.viewCols && f.viewCols > 0 {
		pct := int(math.Round(100 * float64(f.scrollX) / float64(f.totalCols-f.viewCols)))
		summary += fmt.Sprintf("  scroll %d%%", pct)
	}
	return []string{
		ansi.Truncate(style.Render(status), m.width, ""),
		m.theme.Dim.Render(ansi.Truncate(summary, m.width, "")),
	}
}

func renderDetail(st *TaskDetailState, theme Theme) string {
	t := st.Task
	var b strings.Builder
	b.WriteString(theme.Header.Render(t.Title) + "\n\n")
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(theme.Dim.Render(fmt.Sprintf("%-11s", label)) + value + "\n")
	}
	row("Employee", st.Employee)
	row("Project", t.ProjectRef)
	row("Dates", rangeLabel(t.Start, t.End))
	row("Length", dayCount(t.LengthDays()))
	row("Status", strings.ReplaceAll(string(t.Status), "_", " "))
	row("Difficulty", string(t.Difficulty))
	if !t.Persisted() {
		row("Sync", "not saved yet")
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	b.WriteString("\n" + theme.Dim.Render("[esc] close"))
	return theme.Input.Width(64).Render(b.String())
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func windowLabel(w timeline.ViewWindow) string {
	switch w.Mode {
	case timeline.ViewDay:
		return w.Start.Format("Mon Jan 2 2006")
	case timeline.ViewMonth:
		return w.Start.Format("January 2006")
	case timeline.ViewYear:
		return w.Start.Format("2006")
	}
	return rangeLabel(w.Start, w.End())
}

func rangeLabel(start, end time.Time) string {
	if timeline.DiffDays(start, end) == 0 {
		return start.Format("Jan 2 2006")
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2 2006")
}

func truncate(s string, width int) string {
	return ansi.Truncate(s, width, config.TruncationSuffix)
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
