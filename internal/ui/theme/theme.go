package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: warm paper tones for reading, saturated accents for state.
var (
	Primary   = lipgloss.Color("#D97706") // Amber
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#A855F7") // Violet
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#DC2626") // Red
	Pending   = lipgloss.Color("#EAB308") // Yellow
	Text      = lipgloss.Color("#F5F5F4") // Stone 100
	TextDim   = lipgloss.Color("#A8A29E") // Stone 400
	BgDark    = lipgloss.Color("#1C1917") // Stone 900
	BgCard    = lipgloss.Color("#292524") // Stone 800
	Border    = lipgloss.Color("#44403C") // Stone 700
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Reading
var (
	// Cursor marks the sentence under the reading cursor.
	Cursor = lipgloss.NewStyle().
		Foreground(Text).
		Background(Border)

	// Word marks the selected word inside the cursor sentence.
	Word = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Primary).
		Bold(true)

	Gap = lipgloss.NewStyle().
		Foreground(Secondary).
		Underline(true)

	GapActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Secondary).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Waiting = lipgloss.NewStyle().
		Foreground(Pending).
		Italic(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
