package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary = lipgloss.Color("#6366F1") // Indigo
	Accent  = lipgloss.Color("#F59E0B") // Amber
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Headings
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Rule = lipgloss.NewStyle().
		Foreground(Border)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Questions
var (
	QuestionID = lipgloss.NewStyle().
			Foreground(TextDim)

	Prompt = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	OptionLabel = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Option = lipgloss.NewStyle().
		Foreground(Text)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Feedback
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Explanation = lipgloss.NewStyle().
			Foreground(TextDim)

	Points = lipgloss.NewStyle().
		Foreground(Accent)
)

// Summary panel
var Summary = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 2)

// BoxMeter renders a Leitner box as filled and empty cells, e.g. "■■□□□".
func BoxMeter(box, maxBox int) string {
	if box < 0 {
		box = 0
	}
	if box > maxBox {
		box = maxBox
	}
	filled := lipgloss.NewStyle().Foreground(Primary).Render(strings.Repeat("■", box))
	empty := lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("□", maxBox-box))
	return filled + empty
}
