package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/crewboard/internal/database"
	"github.com/akyairhashvil/crewboard/internal/syncer"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
)

// Week of Mon Jan 8 2024. Rows come back ordered by last name:
//
//	y=3  Grace Hopper   lane 0: Compile      Jan 8-12
//	y=4  divider
//	y=5  Ada Lovelace   lane 0: Wire harness Jan 9-11
//	y=6                 lane 1: Review       Jan 10
//	y=7  divider
const boardFixture = `
departments:
  - name: Ops
    employees:
      - first_name: Ada
        last_name: Lovelace
        role: Engineer
        tasks:
          - title: Wire harness
            start: "2024-01-09"
            end: "2024-01-11"
            difficulty: hard
          - title: Review
            start: "2024-01-10"
            end: "2024-01-10"
            difficulty: easy
      - first_name: Grace
        last_name: Hopper
        role: Lead
        tasks:
          - title: Compile
            start: "2024-01-08"
            end: "2024-01-12"
`

const (
	lineGrace    = 3
	lineAdaLane0 = 5
	lineAdaLane1 = 6
)

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	fx, err := database.ParseFixture(strings.NewReader(boardFixture))
	if err != nil {
		t.Fatalf("ParseFixture failed: %v", err)
	}
	if _, err := db.Seed(ctx, fx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return db
}

// setupTestModel builds a loaded week board on Wed Jan 10 2024. With
// withSync the model pushes changes to the database through an adapter.
func setupTestModel(t *testing.T, withSync bool) (BoardModel, *database.Database) {
	t.Helper()
	db := setupTestDB(t)
	opts := Options{
		Source:    db,
		Mode:      timeline.ViewWeek,
		Ref:       localDay(2024, time.January, 10),
		Now:       func() time.Time { return localDay(2024, time.January, 10).Add(12 * time.Hour) },
		ExportDir: t.TempDir(),
	}
	if withSync {
		adapter := syncer.New(db)
		t.Cleanup(adapter.Close)
		opts.Sync = adapter
	}
	m := NewBoardModel(context.Background(), opts)
	m.SetSize(120, 30)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return m, db
}

func update(t *testing.T, m BoardModel, msg tea.Msg) (BoardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(BoardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func press(t *testing.T, m BoardModel, x, y int) BoardModel {
	t.Helper()
	m, _ = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return m
}

func motion(t *testing.T, m BoardModel, x, y int) BoardModel {
	t.Helper()
	m, _ = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	return m
}

func release(t *testing.T, m BoardModel, x, y int) BoardModel {
	t.Helper()
	m, _ = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	return m
}

func key(t *testing.T, m BoardModel, k string) BoardModel {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+u":
		msg = tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ = update(t, m, msg)
	return m
}

func taskByTitle(t *testing.T, b *timeline.Board, title string) timeline.GanttTask {
	t.Helper()
	for _, r := range b.Rows() {
		for _, task := range r.Tasks {
			if task.Title == title {
				return task
			}
		}
	}
	t.Fatalf("task %q not on board", title)
	return timeline.GanttTask{}
}

func sameDay(a, b time.Time) bool {
	return timeline.DiffDays(a, b) == 0
}
