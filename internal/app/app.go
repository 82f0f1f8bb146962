// Package app is the root Bubble Tea model of the terminal reader.
package app

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lesezeit/internal/router"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/screens/home"
	"github.com/abhisek/lesezeit/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *env.Env
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(e *env.Env) AppModel {
	return AppModel{
		env:    e,
		router: router.New(home.New(e)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status lists the optional services that are available.
func (m AppModel) status() string {
	var parts []string
	if m.env.Tutor != nil {
		parts = append(parts, "tutor")
	}
	if m.env.CanSpeak() {
		parts = append(parts, "audio")
	}
	if m.env.CanListen() {
		parts = append(parts, "mic")
	}
	if len(parts) == 0 {
		return "offline  "
	}
	return strings.Join(parts, " · ") + "  "
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program on e.
func Run(e *env.Env) error {
	p := tea.NewProgram(newAppModel(e))
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.router.CloseAll()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
