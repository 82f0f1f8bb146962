package practice

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// OrderScreen asks for the words of a shuffled sentence in order.
type OrderScreen struct {
	env    *env.Env
	ws     *env.Workspace
	cursor int
}

var _ screen.Screen = (*OrderScreen)(nil)

// NewOrder creates the ordering screen.
func NewOrder(e *env.Env, ws *env.Workspace) *OrderScreen {
	return &OrderScreen{env: e, ws: ws}
}

func (o *OrderScreen) Init() tea.Cmd {
	return nil
}

func (o *OrderScreen) Title() string {
	return "Order"
}

func (o *OrderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	m := o.ws.Session.Order
	if !ok || m.Len() == 0 {
		return o, nil
	}
	i := m.Current()
	item := m.Item(i)

	switch kmsg.String() {
	case "left", "h":
		o.cursor = max(o.cursor-1, 0)
		return o, nil
	case "right", "l":
		o.cursor = min(o.cursor+1, max(len(item.Pool)-1, 0))
		return o, nil
	case "enter", "space":
		if o.cursor >= len(item.Pool) {
			return o, nil
		}
		m.Place(i, o.cursor)
		o.cursor = min(o.cursor, max(len(item.Pool)-2, 0))
	case "backspace":
		if len(item.Placed) == 0 {
			return o, nil
		}
		m.Unplace(i, len(item.Placed)-1)
	case "n", "pgdown":
		m.SetCurrent(i + 1)
		o.cursor = 0
	case "p", "pgup":
		m.SetCurrent(i - 1)
		o.cursor = 0
	case "r":
		m.ResetItem(i)
		o.cursor = 0
	default:
		return o, nil
	}
	o.env.Save(o.ws)
	return o, nil
}

func (o *OrderScreen) View(width, height int) string {
	m := o.ws.Session.Order
	cw := components.ContentWidth(width)
	if m.Len() == 0 {
		return components.Center(theme.Hint.Render("This text has no sentences to order."), width, height)
	}

	i := m.Current()
	item := m.Item(i)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Sentence %d of %d", i+1, m.Len())))
	b.WriteString("\n\n")

	placed := strings.Join(item.Placed, " ")
	if placed == "" {
		placed = theme.Hint.Render("Pick the first word below.")
	} else {
		switch item.State {
		case practice.Correct:
			placed = theme.Correct.Render(placed)
		case practice.Incorrect:
			placed = theme.Incorrect.Render(placed)
		default:
			placed = theme.Body.Render(placed)
		}
	}
	b.WriteString(layout.Wrap(placed, cw-6))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(strings.Repeat("─", cw-6)))
	b.WriteString("\n")

	words := make([]string, len(item.Pool))
	for k, w := range item.Pool {
		if k == o.cursor {
			words[k] = theme.Selected.Render("▸" + w)
		} else {
			words[k] = theme.Word.Render(" " + w)
		}
	}
	if len(words) == 0 {
		b.WriteString(theme.Hint.Render("All words placed."))
	} else {
		b.WriteString(layout.Wrap(strings.Join(words, " "), cw-6))
	}
	b.WriteString("\n\n")
	b.WriteString(renderState(item.State))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar(m.CorrectCount(), m.Len(), cw-8).View())

	return components.Column(components.Card(b.String(), cw), width)
}

func (o *OrderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Word"},
		{Key: "Enter", Description: "Place"},
		{Key: "Bksp", Description: "Take back"},
		{Key: "n/p", Description: "Sentence"},
		{Key: "r", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}
