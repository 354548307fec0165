package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — pub quiz board colors, dark background
var (
	Primary = lipgloss.Color("#F59E0B") // Amber
	Accent  = lipgloss.Color("#38BDF8") // Sky Blue
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Category = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Source = lipgloss.NewStyle().
		Foreground(TextDim).
		Underline(true)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	QuestionCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)

	ScoreBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(0, 2)
)
