package home

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/progress"
	"github.com/abhisek/lesezeit/internal/router"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/screens/reader"
	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// entry is one text in the list.
type entry struct {
	topicID string
	textID  string
	topic   string
	title   string
	done    int
}

// HomeScreen lists every text of the library with its practice progress.
type HomeScreen struct {
	env     *env.Env
	entries []entry
	menu    components.Menu
	stale   atomic.Bool
	unsub   func()
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.Closer = (*HomeScreen)(nil)

// New creates the home screen.
func New(e *env.Env) *HomeScreen {
	h := &HomeScreen{env: e}
	for _, t := range e.Library.Topics() {
		for _, info := range t.Texts {
			h.entries = append(h.entries, entry{topicID: t.ID, textID: info.ID, topic: t.Title, title: info.Title})
		}
	}
	h.unsub = e.Progress.Subscribe(func(progress.Change) { h.stale.Store(true) })
	h.reload()
	return h
}

func (h *HomeScreen) reload() {
	ctx := context.Background()
	for i := range h.entries {
		modes, err := h.env.Progress.CompletedModes(ctx, h.entries[i].topicID, h.entries[i].textID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load progress: %v\n", err)
			continue
		}
		h.entries[i].done = len(modes)
	}

	selected := h.menu.Selected
	items := make([]components.MenuItem, len(h.entries))
	for i, en := range h.entries {
		items[i] = components.MenuItem{
			Label:  en.topic + " › " + en.title,
			Detail: marks(en.done),
			Action: h.open(en),
		}
	}
	h.menu = components.NewMenu(items)
	h.menu.Select(selected)
	h.stale.Store(false)
}

func (h *HomeScreen) open(en entry) func() tea.Cmd {
	return func() tea.Cmd {
		text, err := h.env.Library.Text(en.topicID, en.textID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return nil
		}
		return router.Push(reader.New(h.env, text))
	}
}

// marks renders one dot per practice mode, filled for completed ones.
func marks(done int) string {
	total := len(practice.Modes())
	done = min(done, total)
	return lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("●", done)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("○", total-done))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Resume() tea.Cmd {
	if h.stale.Load() {
		h.reload()
	}
	return nil
}

func (h *HomeScreen) Close() {
	if h.unsub != nil {
		h.unsub()
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if len(h.entries) == 0 {
		return components.Center(theme.Hint.Render("The library has no texts."), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Texte"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d texts · ● = practice mode completed", len(h.entries))))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())
	return components.Column(components.Card(b.String(), cw), width)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Read"},
		{Key: "q", Description: "Quit"},
	}
}
