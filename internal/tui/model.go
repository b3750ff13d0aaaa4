// Package tui is the terminal front-end of the board: a bubbletea model that
// turns mouse gestures into board operations and draws the board as
// character cells.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/syncer"
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/akyairhashvil/crewboard/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---

// snapshotMsg carries a fresh copy of the backend data.
type snapshotMsg struct {
	snap syncer.Snapshot
	err  error
}

// syncEventMsg reports a finished sync job.
type syncEventMsg syncer.Event

type syncClosedMsg struct{}

// Options configures a BoardModel.
type Options struct {
	Source syncer.Source
	// Sync receives committed changes. A nil Sync gives a read-only board.
	Sync      *syncer.Adapter
	Scope     models.Scope
	Mode      timeline.ViewMode
	Ref       time.Time
	Now       func() time.Time
	ExportDir string
	Theme     string
}

// addRequest is raised by the board when an empty cell is clicked.
type addRequest struct {
	rowID string
	date  time.Time
}

// interaction holds state shared with board callbacks across model copies.
type interaction struct {
	pendingAdd *addRequest
}

// --- Model ---
type BoardModel struct {
	ctx       context.Context
	board     *timeline.Board
	source    syncer.Source
	sync      *syncer.Adapter
	scope     models.Scope
	mode      timeline.ViewMode
	ref       time.Time
	now       func() time.Time
	exportDir string
	theme     Theme
	keys      *HandlerRegistry
	modal     *ModalManager
	input     *interaction

	scrollX, scrollY int
	loaded           bool
	Message          string
	err              error
	width, height    int
}

func NewBoardModel(ctx context.Context, opts Options) BoardModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Ref.IsZero() {
		opts.Ref = opts.Now()
	}
	SetTheme(opts.Theme)

	var board *timeline.Board
	if opts.Sync != nil {
		board = timeline.NewBoard(opts.Sync)
	} else {
		board = timeline.NewBoard(nil)
	}
	input := &interaction{}
	board.OnRequestAddTask = func(rowID string, date time.Time) {
		input.pendingAdd = &addRequest{rowID: rowID, date: date}
	}

	return BoardModel{
		ctx:       ctx,
		board:     board,
		source:    opts.Source,
		sync:      opts.Sync,
		scope:     opts.Scope,
		mode:      opts.Mode,
		ref:       timeline.Midnight(opts.Ref),
		now:       opts.Now,
		exportDir: opts.ExportDir,
		theme:     CurrentTheme,
		keys:      defaultKeys(),
		modal:     newModalManager(),
		input:     input,
		width:     120,
		height:    40,
	}
}

// Board exposes the underlying board.
func (m BoardModel) Board() *timeline.Board { return m.board }

func (m BoardModel) Mode() timeline.ViewMode { return m.mode }

func (m BoardModel) Ref() time.Time { return m.ref }

func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchCmd(), m.waitForSync())
}

// fetchCmd pulls a snapshot from the source.
func (m BoardModel) fetchCmd() tea.Cmd {
	if m.source == nil {
		return nil
	}
	ctx, src, scope := m.ctx, m.source, m.scope
	return func() tea.Msg {
		snap, err := syncer.Fetch(ctx, src, scope)
		return snapshotMsg{snap: snap, err: err}
	}
}

// waitForSync blocks on the adapter's event stream for one event.
func (m BoardModel) waitForSync() tea.Cmd {
	if m.sync == nil {
		return nil
	}
	events := m.sync.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return syncClosedMsg{}
		}
		return syncEventMsg(ev)
	}
}

func (m *BoardModel) setStatus(msg string) {
	m.Message = msg
	m.err = nil
}

func (m *BoardModel) setStatusError(msg string) {
	m.Message = msg
	m.err = errors.New(msg)
}

func (m BoardModel) today() time.Time {
	return timeline.Midnight(m.now())
}

// frame lays the board out for the current window and screen.
func (m BoardModel) frame() frame {
	layout := m.board.Render(m.ref, m.mode, m.today())
	return newFrame(layout, m.board.Rows(), m.width, m.height, m.scrollX, m.scrollY)
}

// scrollToToday puts today's column in view, or the window start when today
// is outside the window.
func (m *BoardModel) scrollToToday() {
	m.scrollX = 0
	f := m.frame()
	if col, ok := f.todayCol(); ok && f.viewCols > 0 && col >= f.viewCols {
		m.scrollX = col - f.viewCols/2
	}
	m.scrollX = m.frame().scrollX
}

func (m *BoardModel) handleSnapshot(msg snapshotMsg) {
	if msg.err != nil {
		util.LogError("refresh board", msg.err)
		m.setStatusError(fmt.Sprintf("Refresh failed: %v", msg.err))
		return
	}
	m.board.Reconcile(msg.snap.Tasks, msg.snap.Employees)
	if !m.loaded {
		m.loaded = true
		m.scrollToToday()
	}
}

func (m *BoardModel) handleSyncEvent(ev syncer.Event) {
	if ev.Err != nil {
		m.setStatusError(fmt.Sprintf("Sync %s failed: %v", ev.Op, ev.Err))
		return
	}
	switch ev.Op {
	case syncer.OpReschedule:
		m.setStatus(fmt.Sprintf("Saved task %d", ev.ExternalID))
	case syncer.OpCreate:
		m.setStatus(fmt.Sprintf("Created task %d", ev.ExternalID))
	}
}

// Load fetches a snapshot synchronously. The non-interactive print path and
// tests use it instead of running the program.
func (m *BoardModel) Load() error {
	if m.source == nil {
		return nil
	}
	snap, err := syncer.Fetch(m.ctx, m.source, m.scope)
	m.handleSnapshot(snapshotMsg{snap: snap, err: err})
	return err
}

// SetSize sets the screen size used by View.
func (m *BoardModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.clampScroll()
}
