package reader

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// panelHeight is the number of lines reserved below the text.
const panelHeight = 7

func (r *ReaderScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if len(r.sentences) == 0 {
		return components.Center(theme.Hint.Render("This text is empty."), width, height)
	}

	paras := r.renderParagraphs(cw)
	textHeight := max(height-panelHeight-2, 3)
	body := strings.Join(r.window(paras, textHeight), "\n\n")

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Height(textHeight).MaxHeight(textHeight).Render(body))
	b.WriteString("\n")
	b.WriteString(layout.Rule(cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MaxHeight(panelHeight).Render(r.renderPanel(cw)))
	return components.Column(b.String(), width)
}

// renderParagraphs renders every paragraph wrapped to width, highlighting
// the cursor sentence and, in word mode, the selected word.
func (r *ReaderScreen) renderParagraphs(width int) []string {
	parts := make([][]string, len(r.text.Paragraphs))
	for i, s := range r.sentences {
		var rendered string
		switch {
		case i != r.cursor:
			rendered = theme.Body.Render(s.text)
		case r.wordMode:
			words := make([]string, len(s.words))
			for j, w := range s.words {
				if j == r.word {
					words[j] = theme.Word.Render(w)
				} else {
					words[j] = theme.Cursor.Render(w)
				}
			}
			rendered = strings.Join(words, " ")
		default:
			rendered = theme.Cursor.Render(s.text)
		}
		parts[s.para] = append(parts[s.para], rendered)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		out = append(out, layout.Wrap(strings.Join(p, " "), width))
	}
	return out
}

// window returns the paragraphs to show so that the cursor paragraph is
// visible within height lines.
func (r *ReaderScreen) window(paras []string, height int) []string {
	target := r.visibleIndex()
	start, used := target, lipgloss.Height(paras[target])
	for start > 0 {
		h := lipgloss.Height(paras[start-1]) + 1
		if used+h > height {
			break
		}
		used += h
		start--
	}
	end := target + 1
	for end < len(paras) {
		h := lipgloss.Height(paras[end]) + 1
		if used+h > height {
			break
		}
		used += h
		end++
	}
	return paras[start:end]
}

// visibleIndex maps the cursor paragraph to its index among non-empty
// paragraphs.
func (r *ReaderScreen) visibleIndex() int {
	seen := map[int]bool{}
	idx := -1
	for _, s := range r.sentences {
		if !seen[s.para] {
			seen[s.para] = true
			idx++
		}
		if s.para == r.current().para {
			return idx
		}
	}
	return 0
}

func (r *ReaderScreen) renderPanel(width int) string {
	var b strings.Builder
	switch {
	case r.busy != "":
		b.WriteString(theme.Waiting.Render(r.busy))
	case r.panel.translation != nil:
		t := r.panel.translation
		b.WriteString(theme.Subtitle.Render(t.Source))
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render(t.Translation))
		if t.Note != "" {
			b.WriteString("\n" + theme.Hint.Render(t.Note))
		}
	case r.panel.definition != nil:
		d := r.panel.definition
		head := r.panel.word
		if d.BaseForm != "" && !strings.EqualFold(d.BaseForm, r.panel.word) {
			head += " (" + d.BaseForm + ")"
		}
		grammar := d.PartOfSpeech
		if d.Gender != "" {
			grammar += ", " + d.Gender
		}
		b.WriteString(theme.Selected.Render(head) + "  " + theme.Subtitle.Render(grammar))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(d.Translation))
		if d.Meaning != "" {
			b.WriteString("\n" + theme.Subtitle.Render(d.Meaning))
		}
		if d.Example != "" {
			b.WriteString("\n" + theme.Hint.Render("„"+d.Example+"“"))
		}
	default:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Sentence %d of %d. Press t to translate, d to look up a word.", r.cursor+1, len(r.sentences))))
	}

	if r.status != "" {
		style := theme.Subtitle
		if r.failure {
			style = theme.Incorrect
		}
		b.WriteString("\n" + style.Render(r.status))
	}
	return layout.Wrap(b.String(), width)
}
