package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/dealgrid/internal/view"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	selectStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var toneColors = map[view.Tone]lipgloss.Color{
	view.ToneBlue:    lipgloss.Color("12"),
	view.ToneYellow:  lipgloss.Color("11"),
	view.TonePurple:  lipgloss.Color("13"),
	view.ToneOrange:  lipgloss.Color("208"),
	view.ToneGreen:   lipgloss.Color("10"),
	view.ToneRed:     lipgloss.Color("9"),
	view.ToneNeutral: lipgloss.Color("8"),
}

// chip colors an already padded status or priority cell.
func chip(padded, value string) string {
	return lipgloss.NewStyle().Foreground(toneColors[view.ChipTone(value)]).Render(padded)
}
