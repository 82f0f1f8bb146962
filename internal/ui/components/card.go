package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// ContentWidth returns the width of the reading column for a frame width.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 88)
}

// Card wraps content in a rounded border at width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Column centers content horizontally at the top of the area.
func Column(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
