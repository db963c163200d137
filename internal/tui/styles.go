package tui

import "github.com/charmbracelet/lipgloss"

var (
	AccentColor  = lipgloss.Color("#6741d9")
	PrimaryColor = lipgloss.Color("#fab005")
	TextColor    = lipgloss.Color("#dee2e6")
	MutedColor   = lipgloss.Color("#868e96")
	ErrorColor   = lipgloss.Color("#fa5252")
	BorderColor  = lipgloss.Color("#343a40")
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	NavStyle = lipgloss.NewStyle().
			Background(AccentColor).
			Foreground(TextColor).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedBoxStyle = BoxStyle.
			BorderForeground(AccentColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	StarStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PlotStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)
)
