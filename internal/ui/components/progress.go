package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with a count.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar for done of total.
func NewProgressBar(done, total, width int) ProgressBar {
	return ProgressBar{Done: done, Total: total, Width: width}
}

// Fraction returns done/total in [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	count := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := max(p.Width-len(count), 4)

	filled := int(float64(barWidth) * p.Fraction())
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Subtitle.Render(count)
}
