package tui

import "github.com/charmbracelet/lipgloss"

const (
	Accent = "#ffffaf"
	Muted  = "#4d4d4d"
	Normal = "#dddddd"
	Err    = "#ff5f5f"
	Peer   = "#5fd7ff"
)

var (
	container = lipgloss.NewStyle().Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Margin(1, 2, 0, 2).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(Accent))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)).Padding(0, 2)
	helpStyle   = container.Foreground(lipgloss.Color(Muted))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Err)).Bold(true)

	sentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Bold(true)
	recvStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Peer)).Bold(true)
	systemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)).Italic(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Accent)).
			Padding(1, 3)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Normal)).
			Padding(0, 2)

	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#000000")).
				Background(lipgloss.Color(Accent))
)
