package practice

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lesezeit/internal/exercise"
	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// AdvanceDelay is how long an answered card stays on screen.
const AdvanceDelay = 1200 * time.Millisecond

// generation numbers screen instances. A delayed advance carries the
// number of the screen that scheduled it and is dropped by any other.
var generation atomic.Uint64

type advanceMsg struct {
	gen       uint64
	direction exercise.Direction
	index     int
}

// CardsScreen runs the flashcard quiz in both directions.
type CardsScreen struct {
	env    *env.Env
	ws     *env.Workspace
	gen    uint64
	cursor int
}

var _ screen.Screen = (*CardsScreen)(nil)

// NewCards creates the cards screen.
func NewCards(e *env.Env, ws *env.Workspace) *CardsScreen {
	c := &CardsScreen{env: e, ws: ws, gen: generation.Add(1)}
	// The advance scheduled by a previous instance is dropped.
	if ws.Session.Cards.Settle() {
		e.Save(ws)
	}
	if !ws.Session.Cards.Active().Available() {
		for _, d := range exercise.Directions() {
			if ws.Session.Cards.Round(d).Available() {
				ws.Session.Cards.SetDirection(d)
				break
			}
		}
	}
	return c
}

func (c *CardsScreen) Init() tea.Cmd {
	return nil
}

func (c *CardsScreen) Title() string {
	return "Cards"
}

func (c *CardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	cards := c.ws.Session.Cards
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.gen != c.gen {
			return c, nil
		}
		if cards.AdvanceFrom(msg.direction, msg.index) {
			c.cursor = 0
			c.env.Save(c.ws)
		}
		return c, nil

	case tea.KeyMsg:
		round := cards.Active()
		switch key := msg.String(); key {
		case "tab":
			next := exercise.Reverse
			if cards.Direction() == exercise.Reverse {
				next = exercise.Forward
			}
			cards.SetDirection(next)
			c.cursor = 0
			c.env.Save(c.ws)
		case "up", "k":
			c.cursor = max(c.cursor-1, 0)
		case "down", "j":
			if q := round.Current(); q != nil {
				c.cursor = min(c.cursor+1, len(q.Options)-1)
			}
		case "enter", "1", "2", "3", "4":
			if round.ShowResults {
				return c, nil
			}
			if key != "enter" {
				c.cursor = int(key[0] - '1')
			}
			return c, c.answer()
		case "r":
			cards.Restart()
			c.cursor = 0
			c.env.Save(c.ws)
		}
	}
	return c, nil
}

// answer records the option under the cursor and schedules the advance.
func (c *CardsScreen) answer() tea.Cmd {
	cards := c.ws.Session.Cards
	round := cards.Active()
	q := round.Current()
	if q == nil || c.cursor < 0 || c.cursor >= len(q.Options) {
		return nil
	}
	if _, recorded := cards.Answer(q.Options[c.cursor]); !recorded {
		return nil
	}
	c.env.Save(c.ws)

	msg := advanceMsg{gen: c.gen, direction: cards.Direction(), index: round.CurrentIndex}
	return tea.Tick(AdvanceDelay, func(time.Time) tea.Msg {
		return msg
	})
}

func (c *CardsScreen) View(width, height int) string {
	cards := c.ws.Session.Cards
	round := cards.Active()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(c.renderTabs())
	b.WriteString("\n\n")

	switch {
	case !round.Available():
		b.WriteString(theme.Hint.Render(fmt.Sprintf(
			"Not enough words for this direction. Save at least %d words with %d different answers.",
			exercise.MinQuizEntries, exercise.QuizOptions)))
	case round.ShowResults:
		correct, _ := round.Score()
		style := theme.Incorrect
		if correct == len(round.Questions) {
			style = theme.Correct
		}
		b.WriteString(style.Render(fmt.Sprintf("%d of %d correct", correct, len(round.Questions))))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press r for a new round."))
	default:
		q := round.Current()
		mc := components.MultiChoice{
			Prompt:  q.Prompt,
			Options: q.Options,
			Cursor:  c.cursor,
			Correct: q.CorrectAnswer,
		}
		if q.Selected != nil {
			mc.Chosen = *q.Selected
		}
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", round.CurrentIndex+1, len(round.Questions))))
		b.WriteString("\n\n")
		b.WriteString(mc.View())
		correct, answered := round.Score()
		b.WriteString("\n")
		b.WriteString(components.NewProgressBar(correct, len(round.Questions), cw-8).View())
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  (%d answered)", answered)))
	}

	return components.Column(components.Card(b.String(), cw), width)
}

func (c *CardsScreen) renderTabs() string {
	cards := c.ws.Session.Cards
	labels := map[exercise.Direction]string{
		exercise.Forward: "Deutsch → Translation",
		exercise.Reverse: "Translation → Deutsch",
	}
	var tabs []string
	for _, d := range exercise.Directions() {
		label := labels[d]
		if c.ws.Progress.IsModeComplete(practice.CardsKey(d)) {
			label += " ✓"
		}
		if d == cards.Direction() {
			tabs = append(tabs, theme.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Subtitle.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, "  ")
}

func (c *CardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/1-4", Description: "Answer"},
		{Key: "Tab", Description: "Direction"},
		{Key: "r", Description: "New round"},
		{Key: "Esc", Description: "Back"},
	}
}
