package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type KeyHandler func(m BoardModel, key string) (BoardModel, tea.Cmd, bool)

type KeyBinding struct {
	Keys        []string
	Handler     KeyHandler
	Description string
	Priority    int
}

func (b KeyBinding) Matches(key string) bool {
	for _, k := range b.Keys {
		if k == key {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m BoardModel, key string) (BoardModel, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.Matches(key) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) Help() string {
	seen := make(map[string]bool)
	var parts []string
	for _, b := range r.bindings {
		if b.Description == "" || len(b.Keys) == 0 {
			continue
		}
		if seen[b.Keys[0]] {
			continue
		}
		seen[b.Keys[0]] = true
		parts = append(parts, "["+b.Keys[0]+"]"+b.Description)
	}
	return strings.Join(parts, " ")
}

func defaultKeys() *HandlerRegistry {
	r := NewHandlerRegistry()
	r.Register(KeyBinding{Keys: []string{"q", "ctrl+c"}, Handler: handleQuit, Description: "uit", Priority: 100})
	r.Register(KeyBinding{Keys: []string{"esc"}, Handler: handleCancelGesture, Priority: 90})
	r.Register(KeyBinding{Keys: []string{"v"}, Handler: handleCycleMode, Description: "iew", Priority: 50})
	r.Register(KeyBinding{Keys: []string{"d", "w", "m", "y"}, Handler: handleSetMode, Priority: 50})
	r.Register(KeyBinding{Keys: []string{"left", "h"}, Handler: handleShiftWindow, Description: " prev", Priority: 40})
	r.Register(KeyBinding{Keys: []string{"right", "l"}, Handler: handleShiftWindow, Description: " next", Priority: 40})
	r.Register(KeyBinding{Keys: []string{"t"}, Handler: handleToday, Description: "oday", Priority: 40})
	r.Register(KeyBinding{Keys: []string{"[", "shift+left"}, Handler: handleScrollX, Priority: 30})
	r.Register(KeyBinding{Keys: []string{"]", "shift+right"}, Handler: handleScrollX, Description: " scroll", Priority: 30})
	r.Register(KeyBinding{Keys: []string{"up", "k", "down", "j"}, Handler: handleScrollY, Priority: 30})
	r.Register(KeyBinding{Keys: []string{"a"}, Handler: handleAddAtTop, Description: "dd", Priority: 20})
	r.Register(KeyBinding{Keys: []string{"r"}, Handler: handleRefresh, Description: "efresh", Priority: 20})
	r.Register(KeyBinding{Keys: []string{"p"}, Handler: handleExportPDF, Description: "df", Priority: 20})
	return r
}
