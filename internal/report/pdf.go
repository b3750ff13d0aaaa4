// Package report renders a board window to PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/go-pdf/fpdf"
)

const (
	pageW     = 297.0
	pageH     = 210.0
	margin    = 10.0
	gutterW   = 45.0
	headerH   = 12.0
	mmPerPxY  = 0.2
	labelFont = 7.0
)

var barColors = map[timeline.ColorCategory][3]int{
	timeline.ColorBlue:  {66, 133, 244},
	timeline.ColorGreen: {52, 168, 83},
	timeline.ColorAmber: {251, 188, 5},
	timeline.ColorRed:   {234, 67, 53},
}

// WritePDF draws the rows of layout onto landscape A4 pages. rows must be
// the rows the layout was computed from.
func WritePDF(w io.Writer, layout timeline.BoardLayout, rows []timeline.EmployeeRow, title string) error {
	pdf, err := render(layout, rows, title)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func render(layout timeline.BoardLayout, rows []timeline.EmployeeRow, title string) (*fpdf.Fpdf, error) {
	if len(rows) != len(layout.Rows) {
		return nil, fmt.Errorf("layout has %d rows, got %d employee rows", len(layout.Rows), len(rows))
	}
	titles := make(map[string]timeline.GanttTask)
	for _, r := range rows {
		for _, t := range r.Tasks {
			titles[t.ID] = t
		}
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, margin)

	chartW := pageW - 2*margin - gutterW
	scaleX := 1.0
	if layout.Width > 0 {
		scaleX = chartW / layout.Width
	}
	x0 := margin + gutterW

	newPage := func() float64 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(margin, margin)
		pdf.CellFormat(0, 6, title, "", 0, "L", false, 0, "")
		drawDayHeader(pdf, layout.Window, x0, margin+6, chartW)
		return margin + headerH
	}

	y := newPage()
	top := y
	for i, rl := range layout.Rows {
		h := rl.Height * mmPerPxY
		if y+h > pageH-margin {
			drawToday(pdf, layout, x0, scaleX, top, y)
			y = newPage()
			top = y
		}
		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(margin, y+h, pageW-margin, y+h)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(margin, y+1)
		pdf.CellFormat(gutterW-2, 4, rows[i].Name, "", 0, "L", false, 0, "")
		if rows[i].Role != "" {
			pdf.SetFont("Helvetica", "I", 7)
			pdf.SetXY(margin, y+5)
			pdf.CellFormat(gutterW-2, 3, rows[i].Role, "", 0, "L", false, 0, "")
		}

		for _, bar := range rl.Bars {
			task := titles[bar.TaskID]
			c := barColors[task.Color]
			pdf.SetFillColor(c[0], c[1], c[2])
			bx := x0 + bar.Left*scaleX
			by := y + bar.Top*mmPerPxY
			bw := bar.Width * scaleX
			bh := bar.Height * mmPerPxY
			pdf.Rect(bx, by, bw, bh, "F")
			if bar.ShowLabel {
				pdf.SetFont("Helvetica", "", labelFont)
				pdf.SetTextColor(255, 255, 255)
				pdf.SetXY(bx+0.5, by)
				pdf.CellFormat(bw-1, bh, fitText(pdf, task.Title, bw-1), "", 0, "L", false, 0, "")
			}
		}
		y += h
	}
	drawToday(pdf, layout, x0, scaleX, top, y)
	return pdf, pdf.Error()
}

func drawDayHeader(pdf *fpdf.Fpdf, window timeline.ViewWindow, x0, y, chartW float64) {
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetDrawColor(200, 200, 200)
	dayW := chartW / float64(window.NumDays)
	for i := 0; i < window.NumDays; i++ {
		d := timeline.AddDays(window.Start, i)
		label, ok := headerLabel(window.Mode, d)
		if !ok {
			continue
		}
		x := x0 + float64(i)*dayW
		pdf.Line(x, y, x, y+4)
		pdf.SetXY(x+0.3, y)
		pdf.CellFormat(0, 4, label, "", 0, "L", false, 0, "")
	}
}

// headerLabel decides which days get a tick, so dense windows stay legible.
func headerLabel(mode timeline.ViewMode, d time.Time) (string, bool) {
	switch mode {
	case timeline.ViewDay:
		return d.Format("Mon 02 Jan 2006"), true
	case timeline.ViewWeek:
		return d.Format("Mon 02"), true
	case timeline.ViewMonth:
		return d.Format("02"), true
	}
	if d.Day() == 1 {
		return d.Format("Jan"), true
	}
	return "", false
}

func drawToday(pdf *fpdf.Fpdf, layout timeline.BoardLayout, x0, scaleX, top, bottom float64) {
	if !layout.ShowToday || bottom <= top {
		return
	}
	x := x0 + layout.TodayX*scaleX
	pdf.SetDrawColor(220, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(x, top, x, bottom)
	pdf.SetLineWidth(0.2)
}

func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	if len(r) == 0 {
		return ""
	}
	return string(r) + "..."
}
