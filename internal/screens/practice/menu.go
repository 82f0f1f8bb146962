// Package practice holds the practice menu of a text and one screen per
// practice mode. Every change to the practice state is saved right away.
package practice

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/exercise"
	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/router"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
	"github.com/abhisek/lesezeit/internal/vocab"
)

// modeTitles are the menu labels of the practice modes.
var modeTitles = map[practice.Mode]string{
	practice.ModeCards: "Cards",
	practice.ModeFill:  "Fill the gaps",
	practice.ModeWrite: "Write the gaps",
	practice.ModeOrder: "Word order",
	practice.ModeSpeak: "Conversation",
}

// MenuScreen lists the practice modes of one text.
type MenuScreen struct {
	env  *env.Env
	text *content.Text
	ws   *env.Workspace
	err  error
	menu components.Menu

	vocabChanged atomic.Bool
	unsub        func()
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.Resumer = (*MenuScreen)(nil)
var _ screen.Closer = (*MenuScreen)(nil)

// New creates the practice menu for text.
func New(e *env.Env, text *content.Text) *MenuScreen {
	m := &MenuScreen{env: e, text: text}
	m.unsub = e.Vocab.Subscribe(func(ev vocab.Event) {
		if ev.Entry.TopicID == text.TopicID && ev.Entry.TextID == text.ID {
			m.vocabChanged.Store(true)
		}
	})
	return m
}

type workspaceMsg struct {
	ws  *env.Workspace
	err error
}

func (m *MenuScreen) Init() tea.Cmd {
	e, text := m.env, m.text
	return func() tea.Msg {
		ws, err := e.OpenWorkspace(context.Background(), text)
		return workspaceMsg{ws: ws, err: err}
	}
}

func (m *MenuScreen) Resume() tea.Cmd {
	if m.ws == nil {
		return nil
	}
	if m.vocabChanged.Swap(false) {
		if err := m.env.RefreshVocab(context.Background(), m.ws); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		m.env.Save(m.ws)
	}
	m.build()
	return nil
}

func (m *MenuScreen) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m *MenuScreen) Title() string {
	return "Practice · " + m.text.Title
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case workspaceMsg:
		m.ws, m.err = msg.ws, msg.err
		if m.ws != nil {
			m.vocabChanged.Store(false)
			m.build()
		}
		return m, nil

	case tea.KeyMsg:
		if m.ws == nil {
			return m, nil
		}
		if msg.String() == "r" {
			mode := practice.Modes()[m.menu.Selected]
			m.ws.Session.Reset(mode)
			m.env.Save(m.ws)
			m.build()
			return m, nil
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

// build recreates the menu from the session, keeping the selection.
func (m *MenuScreen) build() {
	selected := m.menu.Selected
	modes := practice.Modes()
	items := make([]components.MenuItem, len(modes))
	for i, mode := range modes {
		detail, ok := m.status(mode)
		if m.ws.Session.Complete(mode) {
			detail = "✓ " + detail
		}
		items[i] = components.MenuItem{
			Label:    modeTitles[mode],
			Detail:   detail,
			Disabled: !ok,
			Action:   m.open(mode),
		}
	}
	m.menu = components.Menu{Items: items}
	m.menu.Select(selected)
}

// status describes the state of mode and reports whether it can be opened.
func (m *MenuScreen) status(mode practice.Mode) (string, bool) {
	s := m.ws.Session
	switch mode {
	case practice.ModeCards:
		if !s.Cards.Round(exercise.Forward).Available() && !s.Cards.Round(exercise.Reverse).Available() {
			return fmt.Sprintf("save at least %d words with different translations", exercise.MinQuizEntries), false
		}
		var parts []string
		for _, d := range exercise.Directions() {
			correct, _ := s.Cards.Round(d).Score()
			parts = append(parts, fmt.Sprintf("%s %d/%d", d, correct, len(s.Cards.Round(d).Questions)))
		}
		return strings.Join(parts, " · "), true
	case practice.ModeFill:
		return countDetail(s.Fill.CorrectCount(), s.Fill.Len(), "sentences")
	case practice.ModeWrite:
		return countDetail(s.Write.CorrectCount(), s.Write.Len(), "sentences")
	case practice.ModeOrder:
		return countDetail(s.Order.CorrectCount(), s.Order.Len(), "sentences")
	case practice.ModeSpeak:
		if s.Speak.Ready() {
			return countDetail(s.Speak.CorrectCount(), s.Speak.Len(), "answers")
		}
		if m.env.Tutor == nil {
			return "needs an LLM provider", false
		}
		return "questions are generated on start", true
	}
	return "", false
}

func countDetail(correct, total int, noun string) (string, bool) {
	if total == 0 {
		return "text too short", false
	}
	return fmt.Sprintf("%d/%d %s", correct, total, noun), true
}

func (m *MenuScreen) open(mode practice.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		var next screen.Screen
		switch mode {
		case practice.ModeCards:
			next = NewCards(m.env, m.ws)
		case practice.ModeFill:
			next = NewGaps(m.env, m.ws, m.ws.Session.Fill)
		case practice.ModeWrite:
			next = NewGaps(m.env, m.ws, m.ws.Session.Write)
		case practice.ModeOrder:
			next = NewOrder(m.env, m.ws)
		case practice.ModeSpeak:
			next = NewSpeak(m.env, m.ws)
		}
		return router.Push(next)
	}
}

func (m *MenuScreen) View(width, height int) string {
	if m.err != nil {
		return components.Center(theme.Incorrect.Render("Could not open practice: "+m.err.Error()), width, height)
	}
	if m.ws == nil {
		return components.Center(theme.Waiting.Render("Loading…"), width, height)
	}

	done := 0
	for _, mode := range practice.Modes() {
		if m.ws.Session.Complete(mode) {
			done++
		}
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Render(m.text.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d saved words", len(m.ws.Vocab))))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar(done, len(practice.Modes()), cw-8).View())
	b.WriteString("\n\n")
	b.WriteString(m.menu.View())
	return components.Column(components.Card(b.String(), cw), width)
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "r", Description: "Reset mode"},
		{Key: "Esc", Description: "Back"},
	}
}
