package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// MultiChoice renders a multiple-choice question. The answer state lives
// with the caller; Chosen is empty until an option was picked.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  string
	Correct string
}

// Answered reports whether an option was picked.
func (m MultiChoice) Answered() bool {
	return m.Chosen != ""
}

// View renders the prompt and the options. Once answered, the correct
// option is green and a wrong choice red.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Answered() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case m.Answered() && opt == m.Correct:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case m.Answered() && opt == m.Chosen:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		case m.Answered():
			b.WriteString(theme.Subtitle.Render(line))
		case i == m.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
