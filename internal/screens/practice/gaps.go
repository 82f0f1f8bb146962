package practice

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lesezeit/internal/exercise"
	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// GapsScreen runs the fill mode (words picked from a bank) and the write
// mode (words typed).
type GapsScreen struct {
	env   *env.Env
	ws    *env.Workspace
	mode  *practice.GapMode
	gap   int // index into the gaps of the current sentence
	bank  int // cursor in the word bank (fill)
	input components.TextInput
}

var _ screen.Screen = (*GapsScreen)(nil)

// NewGaps creates the screen for a fill or write mode.
func NewGaps(e *env.Env, ws *env.Workspace, mode *practice.GapMode) *GapsScreen {
	g := &GapsScreen{env: e, ws: ws, mode: mode, input: components.NewTextInput("type the missing word", 40)}
	g.syncInput()
	return g
}

func (g *GapsScreen) writing() bool {
	return g.mode.Mode() == practice.ModeWrite
}

func (g *GapsScreen) Init() tea.Cmd {
	if g.writing() {
		return g.input.Init()
	}
	return nil
}

func (g *GapsScreen) Title() string {
	return modeTitles[g.mode.Mode()]
}

func (g *GapsScreen) gapIDs() []int {
	if g.mode.Len() == 0 {
		return nil
	}
	return g.mode.Sentence(g.mode.Current()).Template.GapIDs()
}

func (g *GapsScreen) currentGap() (int, bool) {
	ids := g.gapIDs()
	if g.gap < 0 || g.gap >= len(ids) {
		return 0, false
	}
	return ids[g.gap], true
}

// syncInput loads the answer of the selected gap into the text input.
func (g *GapsScreen) syncInput() {
	if !g.writing() || g.mode.Len() == 0 {
		return
	}
	id, ok := g.currentGap()
	if !ok {
		return
	}
	g.input.SetValue(g.mode.Item(g.mode.Current()).Answers[id])
}

func (g *GapsScreen) moveSentence(delta int) {
	g.mode.SetCurrent(g.mode.Current() + delta)
	g.gap, g.bank = 0, 0
	g.syncInput()
	g.env.Save(g.ws)
}

func (g *GapsScreen) moveGap(delta int) {
	n := len(g.gapIDs())
	if n == 0 {
		return
	}
	g.gap = (g.gap + delta + n) % n
	g.syncInput()
}

func (g *GapsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || g.mode.Len() == 0 {
		if g.writing() {
			var cmd tea.Cmd
			g.input, cmd = g.input.Update(msg)
			return g, cmd
		}
		return g, nil
	}
	i := g.mode.Current()

	switch kmsg.String() {
	case "tab":
		g.moveGap(1)
		return g, nil
	case "shift+tab":
		g.moveGap(-1)
		return g, nil
	case "pgdown", "ctrl+n":
		g.moveSentence(1)
		return g, nil
	case "pgup", "ctrl+p":
		g.moveSentence(-1)
		return g, nil
	case "enter":
		g.mode.Check(i)
		g.env.Save(g.ws)
		return g, nil
	case "ctrl+r":
		g.mode.ResetItem(i)
		g.syncInput()
		g.env.Save(g.ws)
		return g, nil
	}

	if g.writing() {
		return g.updateWrite(msg, i)
	}
	return g.updateFill(kmsg, i)
}

func (g *GapsScreen) updateWrite(msg tea.Msg, i int) (screen.Screen, tea.Cmd) {
	before := g.input.Value()
	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	if g.input.Value() != before {
		if id, ok := g.currentGap(); ok {
			g.mode.Type(i, id, g.input.Value())
			g.env.Save(g.ws)
		}
	}
	return g, cmd
}

func (g *GapsScreen) updateFill(msg tea.KeyMsg, i int) (screen.Screen, tea.Cmd) {
	bank := g.mode.Bank(i)
	switch msg.String() {
	case "left", "h":
		g.bank = max(g.bank-1, 0)
	case "right", "l":
		g.bank = min(g.bank+1, max(len(bank)-1, 0))
	case "n":
		g.moveSentence(1)
	case "p":
		g.moveSentence(-1)
	case "space":
		id, ok := g.currentGap()
		if !ok || g.bank >= len(bank) {
			return g, nil
		}
		g.mode.Place(i, id, bank[g.bank])
		g.bank = min(g.bank, max(len(g.mode.Bank(i))-1, 0))
		g.moveToEmptyGap(i)
		g.env.Save(g.ws)
	case "backspace", "delete":
		if id, ok := g.currentGap(); ok {
			g.mode.Clear(i, id)
			g.env.Save(g.ws)
		}
	}
	return g, nil
}

// moveToEmptyGap selects the next gap without an answer, if any.
func (g *GapsScreen) moveToEmptyGap(i int) {
	ids := g.gapIDs()
	answers := g.mode.Item(i).Answers
	for k := 1; k <= len(ids); k++ {
		j := (g.gap + k) % len(ids)
		if answers[ids[j]] == "" {
			g.gap = j
			return
		}
	}
}

func (g *GapsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if g.mode.Len() == 0 {
		return components.Center(theme.Hint.Render("This text has no sentences long enough for gaps."), width, height)
	}

	i := g.mode.Current()
	sentence := g.mode.Sentence(i)
	item := g.mode.Item(i)
	selected, _ := g.currentGap()

	rendered := sentence.Template.Render(func(seg exercise.TemplateSegment) string {
		answer := item.Answers[seg.GapID]
		text := answer
		if text == "" {
			text = seg.Hint
		}
		switch {
		case item.State == practice.Correct:
			return theme.Correct.Render(text)
		case item.State == practice.Incorrect && slices.Contains(item.IncorrectGaps, seg.GapID):
			return theme.Incorrect.Render("[" + text + "]")
		case seg.GapID == selected:
			return theme.GapActive.Render("[" + text + "]")
		default:
			return theme.Gap.Render("[" + text + "]")
		}
	})

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Sentence %d of %d", i+1, g.mode.Len())))
	b.WriteString("\n\n")
	b.WriteString(layout.Wrap(rendered, cw-6))
	b.WriteString("\n\n")

	if g.writing() {
		b.WriteString("Answer: " + g.input.View())
	} else {
		b.WriteString(g.renderBank(g.mode.Bank(i)))
	}
	b.WriteString("\n\n")
	b.WriteString(renderState(item.State))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar(g.mode.CorrectCount(), g.mode.Len(), cw-8).View())

	return components.Column(components.Card(b.String(), cw), width)
}

func (g *GapsScreen) renderBank(bank []string) string {
	if len(bank) == 0 {
		return theme.Hint.Render("All words placed.")
	}
	words := make([]string, len(bank))
	for k, w := range bank {
		if k == g.bank {
			words[k] = theme.Selected.Render("▸" + w)
		} else {
			words[k] = theme.Unselected.Render(" " + w)
		}
	}
	return strings.Join(words, "  ")
}

func renderState(s practice.ValidationState) string {
	switch s {
	case practice.Correct:
		return theme.Correct.Render("Richtig!")
	case practice.Incorrect:
		return theme.Incorrect.Render("Not quite. Fix the marked words.")
	default:
		return theme.Hint.Render("Fill every gap to check.")
	}
}

func (g *GapsScreen) KeyHints() []layout.KeyHint {
	if g.writing() {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next gap"},
			{Key: "Enter", Description: "Check"},
			{Key: "PgUp/PgDn", Description: "Sentence"},
			{Key: "Ctrl+R", Description: "Clear"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next gap"},
		{Key: "←→", Description: "Word"},
		{Key: "Space", Description: "Place"},
		{Key: "Enter", Description: "Check"},
		{Key: "n/p", Description: "Sentence"},
		{Key: "Ctrl+R", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}
