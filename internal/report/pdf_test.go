package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/akyairhashvil/crewboard/internal/testutil"
	"github.com/akyairhashvil/crewboard/internal/timeline"
)

func sampleRows(n int) []timeline.EmployeeRow {
	rows := make([]timeline.EmployeeRow, n)
	for i := range rows {
		rows[i] = timeline.EmployeeRow{
			ID:   timeline.RowLocalID(int64(i + 1)),
			Name: "Employee",
			Role: "Engineer",
			Tasks: timeline.AssignLanes([]timeline.GanttTask{
				{ID: "a", Title: "A very long task title that will not fit", Start: testutil.Day(1), End: testutil.Day(4), Color: timeline.ColorRed},
				{ID: "b", Title: "B", Start: testutil.Day(3), End: testutil.Day(3)},
			}),
		}
	}
	return rows
}

func TestWritePDFProducesDocument(t *testing.T) {
	rows := sampleRows(2)
	window := timeline.ComputeViewWindow(testutil.Day(1), timeline.ViewWeek)
	layout := timeline.Layout(window, rows, testutil.Day(2), timeline.DefaultGeometry())

	var buf bytes.Buffer
	if err := WritePDF(&buf, layout, rows, "Week of 2024-01-01"); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWritePDFPaginatesManyRows(t *testing.T) {
	rows := sampleRows(80)
	window := timeline.ComputeViewWindow(testutil.Day(1), timeline.ViewYear)
	layout := timeline.Layout(window, rows, testutil.Day(2), timeline.DefaultGeometry())

	pdf, err := render(layout, rows, "2024")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if pdf.PageCount() < 2 {
		t.Fatalf("expected several pages, got %d", pdf.PageCount())
	}
}

func TestWritePDFRowMismatch(t *testing.T) {
	window := timeline.ComputeViewWindow(testutil.Day(1), timeline.ViewWeek)
	layout := timeline.Layout(window, sampleRows(1), testutil.Day(1), timeline.DefaultGeometry())
	if err := WritePDF(&bytes.Buffer{}, layout, nil, "x"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestHeaderLabel(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if label, ok := headerLabel(timeline.ViewYear, jan1); !ok || label != "Jan" {
		t.Fatalf("year label = %q %v", label, ok)
	}
	if _, ok := headerLabel(timeline.ViewYear, jan1.AddDate(0, 0, 1)); ok {
		t.Fatalf("year view should only label month starts")
	}
	if label, _ := headerLabel(timeline.ViewMonth, jan1); label != "01" {
		t.Fatalf("month label = %q", label)
	}
}
