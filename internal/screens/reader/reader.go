// Package reader is the reading screen: a sentence cursor over one text
// with translation, dictionary lookup, saving words and read-aloud.
package reader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/exercise"
	"github.com/abhisek/lesezeit/internal/router"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	practicescreen "github.com/abhisek/lesezeit/internal/screens/practice"
	"github.com/abhisek/lesezeit/internal/tutor"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/vocab"
)

type sentence struct {
	para  int
	text  string
	words []string
}

// lookup is the content of the panel below the text.
type lookup struct {
	translation *tutor.Translation
	definition  *tutor.Definition
	word        string
	context     string
}

// ReaderScreen shows one text.
type ReaderScreen struct {
	env       *env.Env
	text      *content.Text
	sentences []sentence

	cursor   int
	wordMode bool
	word     int

	// seq tags lookups so that a slow answer for an earlier request does not
	// overwrite a newer one.
	seq     int
	busy    string
	panel   lookup
	status  string
	failure bool

	playback env.Playback

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*ReaderScreen)(nil)
var _ screen.Closer = (*ReaderScreen)(nil)
var _ screen.KeyHintProvider = (*ReaderScreen)(nil)

// New creates a reader for text.
func New(e *env.Env, text *content.Text) *ReaderScreen {
	ctx, cancel := context.WithCancel(context.Background())
	r := &ReaderScreen{env: e, text: text, ctx: ctx, cancel: cancel}
	for i, p := range text.Paragraphs {
		for _, s := range exercise.Segment(p) {
			r.sentences = append(r.sentences, sentence{para: i, text: s, words: strings.Fields(s)})
		}
	}
	return r
}

func (r *ReaderScreen) Init() tea.Cmd {
	return nil
}

func (r *ReaderScreen) Close() {
	r.playback.Stop()
	r.cancel()
}

func (r *ReaderScreen) Title() string {
	return r.text.Title
}

func (r *ReaderScreen) current() sentence {
	if len(r.sentences) == 0 {
		return sentence{}
	}
	return r.sentences[r.cursor]
}

// currentWord returns the selected word without surrounding punctuation.
func (r *ReaderScreen) currentWord() string {
	s := r.current()
	if r.word < 0 || r.word >= len(s.words) {
		return ""
	}
	return exercise.CleanWord(s.words[r.word])
}

func (r *ReaderScreen) moveSentence(delta int) {
	if len(r.sentences) == 0 {
		return
	}
	r.cursor = min(max(r.cursor+delta, 0), len(r.sentences)-1)
	r.word = 0
}

func (r *ReaderScreen) moveWord(delta int) {
	n := len(r.current().words)
	if n == 0 {
		return
	}
	if !r.wordMode {
		r.wordMode = true
		return
	}
	r.word = min(max(r.word+delta, 0), n-1)
}

func (r *ReaderScreen) setStatus(msg string, failure bool) {
	r.status = msg
	r.failure = failure
}

func (r *ReaderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case translatedMsg:
		if msg.seq != r.seq {
			return r, nil
		}
		r.busy = ""
		if msg.err != nil {
			r.setStatus(describe(msg.err), true)
			return r, nil
		}
		r.panel = lookup{translation: &msg.result}
		r.setStatus("", false)
		return r, nil

	case definedMsg:
		if msg.seq != r.seq {
			return r, nil
		}
		r.busy = ""
		if msg.err != nil {
			r.setStatus(describe(msg.err), true)
			return r, nil
		}
		r.panel = lookup{definition: &msg.result, word: msg.word, context: msg.context}
		r.setStatus("", false)
		return r, nil

	case savedMsg:
		switch {
		case errors.Is(msg.err, vocab.ErrDuplicate):
			r.setStatus(fmt.Sprintf("%q is already in your word list.", msg.entry.SourceTerm), false)
		case msg.err != nil:
			r.setStatus(describe(msg.err), true)
		default:
			r.setStatus(fmt.Sprintf("Saved %q → %q.", msg.entry.SourceTerm, msg.entry.TargetTerm), false)
		}
		return r, nil

	case spokenMsg:
		if !r.playback.Latest(msg.seq) {
			return r, nil
		}
		r.busy = ""
		if msg.err != nil {
			r.setStatus(describe(msg.err), true)
		}
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ReaderScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		r.moveSentence(-1)
	case "down", "j":
		r.moveSentence(1)
	case "left", "h":
		r.moveWord(-1)
	case "right", "l":
		r.moveWord(1)
	case "w":
		r.wordMode = !r.wordMode
		r.word = 0
	case "t":
		return r, r.translate()
	case "d":
		if !r.wordMode {
			r.wordMode = true
			r.word = 0
		}
		return r, r.define()
	case "s":
		return r, r.save()
	case "a":
		return r, r.speak()
	case "p":
		return r, router.Push(practicescreen.New(r.env, r.text))
	}
	return r, nil
}

func (r *ReaderScreen) translate() tea.Cmd {
	if r.env.Tutor == nil {
		r.setStatus(env.ErrNoTutor.Error(), true)
		return nil
	}
	s := r.current()
	text, passage := s.text, r.text.Paragraphs[s.para]
	if r.wordMode {
		text, passage = r.currentWord(), s.text
	}
	if text == "" {
		return nil
	}
	r.seq++
	seq, svc, ctx := r.seq, r.env.Tutor, r.ctx
	r.busy = "Translating…"
	return func() tea.Msg {
		t, err := svc.Translate(ctx, text, passage)
		return translatedMsg{seq: seq, result: t, err: err}
	}
}

func (r *ReaderScreen) define() tea.Cmd {
	if r.env.Tutor == nil {
		r.setStatus(env.ErrNoTutor.Error(), true)
		return nil
	}
	word, ctxSentence := r.currentWord(), r.current().text
	if word == "" {
		return nil
	}
	r.seq++
	seq, svc, ctx := r.seq, r.env.Tutor, r.ctx
	r.busy = "Looking up " + word + "…"
	return func() tea.Msg {
		d, err := svc.Define(ctx, word, ctxSentence)
		return definedMsg{seq: seq, word: word, context: ctxSentence, result: d, err: err}
	}
}

// save stores the word of the current definition.
func (r *ReaderScreen) save() tea.Cmd {
	d := r.panel.definition
	if d == nil {
		r.setStatus("Look up a word with d before saving it.", false)
		return nil
	}
	e := vocab.Entry{
		TopicID:    r.text.TopicID,
		TextID:     r.text.ID,
		SourceTerm: r.panel.word,
		BaseForm:   d.BaseForm,
		TargetTerm: d.Translation,
		Context:    r.panel.context,
	}
	store, ctx := r.env.Vocab, r.ctx
	return func() tea.Msg {
		saved, err := store.Add(ctx, e)
		if err != nil {
			saved = e
		}
		return savedMsg{entry: saved, err: err}
	}
}

func (r *ReaderScreen) speak() tea.Cmd {
	if !r.env.CanSpeak() {
		r.setStatus("Read-aloud needs a speech API key and an audio player (mpv, ffplay, mpg123 or afplay).", true)
		return nil
	}
	text := r.current().text
	if r.wordMode {
		text = r.currentWord()
	}
	if text == "" {
		return nil
	}
	ctx, seq := r.playback.Start(r.ctx)
	e := r.env
	r.busy = "Playing…"
	return func() tea.Msg {
		return spokenMsg{seq: seq, err: e.Speak(ctx, text)}
	}
}

func (r *ReaderScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Sentence"},
		{Key: "←→", Description: "Word"},
		{Key: "t", Description: "Translate"},
		{Key: "d", Description: "Define"},
	}
	if r.panel.definition != nil {
		hints = append(hints, layout.KeyHint{Key: "s", Description: "Save word"})
	}
	return append(hints,
		layout.KeyHint{Key: "a", Description: "Listen"},
		layout.KeyHint{Key: "p", Description: "Practice"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}
