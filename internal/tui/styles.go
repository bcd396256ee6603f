package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

var (
	colorO       = lipgloss.Color("#a3be8c")
	colorX       = lipgloss.Color("#d08770")
	colorNeutral = lipgloss.Color("#4c566a")
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5e81ac")).
			Padding(0, 1).
			Bold(true)

	TurnStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorNeutral)

	CellStyle = lipgloss.NewStyle().
			Width(3).
			Align(lipgloss.Center).
			Bold(true)

	CursorStyle = CellStyle.
			Reverse(true)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bf616a")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// playerColor - distinct color per player, neutral for an empty cell.
func playerColor(mark entity.Mark) lipgloss.Color {
	switch mark {
	case entity.PlayerO:
		return colorO
	case entity.PlayerX:
		return colorX
	default:
		return colorNeutral
	}
}

func boardStyle(turn entity.Mark) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(playerColor(turn))
}

// ApplyColorProfile - drops all colors when noColor is set.
func ApplyColorProfile(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
