package tui

import (
	"github.com/akyairhashvil/crewboard/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name      string
	Border    lipgloss.Color
	Header    lipgloss.Style
	Gutter    lipgloss.Style
	Grid      lipgloss.Style
	Today     lipgloss.Style
	BarBlue   lipgloss.Style
	BarGreen  lipgloss.Style
	BarAmber  lipgloss.Style
	BarRed    lipgloss.Style
	Dragging  lipgloss.Style
	Input     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Grid:      lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		Today:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		BarBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")),
		BarGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("71")),
		BarAmber:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")),
		BarRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")),
		Dragging:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("205")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(50),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:      "Dracula",
		Border:    lipgloss.Color("62"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Grid:      lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Today:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		BarBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("117")),
		BarGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("120")),
		BarAmber:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("215")),
		BarRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("203")),
		Dragging:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("212")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(50),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

// BarStyle picks the bar fill for a color category.
func (t Theme) BarStyle(c timeline.ColorCategory) lipgloss.Style {
	switch c {
	case timeline.ColorGreen:
		return t.BarGreen
	case timeline.ColorAmber:
		return t.BarAmber
	case timeline.ColorRed:
		return t.BarRed
	}
	return t.BarBlue
}
