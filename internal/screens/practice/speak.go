package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/screen"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/tutor"
	"github.com/abhisek/lesezeit/internal/ui/components"
	"github.com/abhisek/lesezeit/internal/ui/layout"
	"github.com/abhisek/lesezeit/internal/ui/theme"
)

// PollInterval is how often finished evaluations are collected.
const PollInterval = 300 * time.Millisecond

type (
	dialogueMsg struct {
		questions []string
		err       error
	}
	pollMsg   struct{ gen uint64 }
	listenMsg struct {
		turn       int
		transcript string
		err        error
	}
	playedMsg struct {
		seq int
		err error
	}
)

// SpeakScreen runs the conversation mode: questions about the text are
// answered by voice or keyboard and judged by the tutor.
type SpeakScreen struct {
	env  *env.Env
	ws   *env.Workspace
	gen  uint64
	eval *tutor.Evaluator

	ctx      context.Context
	cancel   context.CancelFunc
	playback env.Playback

	input     components.TextInput
	loading   bool
	listening bool
	status    string
	err       error
}

var _ screen.Screen = (*SpeakScreen)(nil)
var _ screen.Closer = (*SpeakScreen)(nil)

// NewSpeak creates the conversation screen.
func NewSpeak(e *env.Env, ws *env.Workspace) *SpeakScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &SpeakScreen{
		env:    e,
		ws:     ws,
		gen:    generation.Add(1),
		ctx:    ctx,
		cancel: cancel,
		input:  components.NewTextInput("type your answer in German", 200),
	}
	if e.Tutor != nil {
		s.eval = tutor.NewEvaluator(e.Tutor)
	}
	return s
}

func (s *SpeakScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init(), s.poll()}
	if !s.ws.Session.Speak.Ready() {
		cmds = append(cmds, s.generate())
	}
	return tea.Batch(cmds...)
}

func (s *SpeakScreen) Close() {
	s.playback.Stop()
	s.cancel()
}

func (s *SpeakScreen) Title() string {
	return "Conversation"
}

func (s *SpeakScreen) generate() tea.Cmd {
	if s.env.Tutor == nil {
		s.err = env.ErrNoTutor
		return nil
	}
	s.loading = true
	ctx, svc, text := s.ctx, s.env.Tutor, s.ws.Text
	return func() tea.Msg {
		qs, err := svc.GenerateDialogue(ctx, text.Title, text.Paragraphs)
		return dialogueMsg{questions: qs, err: err}
	}
}

func (s *SpeakScreen) poll() tea.Cmd {
	gen := s.gen
	return tea.Tick(PollInterval, func(time.Time) tea.Msg {
		return pollMsg{gen: gen}
	})
}

func (s *SpeakScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	m := s.ws.Session.Speak
	switch msg := msg.(type) {
	case dialogueMsg:
		s.loading = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		m.SetQuestions(msg.questions)
		s.env.Save(s.ws)
		s.syncInput()
		return s, nil

	case pollMsg:
		if msg.gen != s.gen || s.ctx.Err() != nil {
			return s, nil
		}
		s.collect()
		return s, s.poll()

	case listenMsg:
		s.listening = false
		if msg.err != nil {
			s.status = describe(msg.err)
			return s, nil
		}
		s.status = ""
		s.submit(msg.turn, msg.transcript)
		if msg.turn == m.Current() {
			s.syncInput()
		}
		return s, nil

	case playedMsg:
		if !s.playback.Latest(msg.seq) {
			return s, nil
		}
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			s.status = describe(msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			if msg.String() == "ctrl+g" {
				s.err = nil
				return s, s.generate()
			}
			return s, nil
		}
		if !m.Ready() {
			return s, nil
		}
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SpeakScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	m := s.ws.Session.Speak
	i := m.Current()
	switch msg.String() {
	case "enter":
		s.submit(i, s.input.Value())
		return s, nil
	case "ctrl+n", "pgdown":
		m.SetCurrent(i + 1)
		s.changedTurn()
		return s, nil
	case "ctrl+p", "pgup":
		m.SetCurrent(i - 1)
		s.changedTurn()
		return s, nil
	case "ctrl+x":
		m.ResetItem(i)
		s.env.Save(s.ws)
		s.syncInput()
		return s, nil
	case "ctrl+l":
		return s, s.play(m.Turn(i).Question)
	case "ctrl+r":
		return s, s.listen(i)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SpeakScreen) changedTurn() {
	s.status = ""
	s.syncInput()
	s.env.Save(s.ws)
}

func (s *SpeakScreen) syncInput() {
	m := s.ws.Session.Speak
	if !m.Ready() {
		return
	}
	s.input.SetValue(m.Turn(m.Current()).Transcript)
}

// submit records transcript as the answer of turn and starts its
// evaluation.
func (s *SpeakScreen) submit(turn int, transcript string) {
	m := s.ws.Session.Speak
	if !m.Record(turn, transcript) {
		s.env.Save(s.ws)
		return
	}
	s.env.Save(s.ws)
	t := m.Turn(turn)
	s.eval.Request(s.ctx, turn, t.Question, t.Transcript, s.ws.Text.Paragraphs)
}

// collect applies finished evaluations. Results for answers that have been
// replaced in the meantime are dropped by the mode.
func (s *SpeakScreen) collect() {
	if s.eval == nil {
		return
	}
	results := s.eval.Consume()
	if len(results) == 0 {
		return
	}
	m := s.ws.Session.Speak
	for _, r := range results {
		if r.Err != nil {
			m.FailEvaluation(r.Turn, r.Transcript)
			if !errors.Is(r.Err, context.Canceled) {
				s.status = describe(r.Err)
			}
			continue
		}
		m.ApplyEvaluation(r.Turn, r.Transcript, practice.Evaluation{
			Acceptable: r.Evaluation.Acceptable,
			Feedback:   feedback(r.Evaluation),
		})
	}
	s.env.Save(s.ws)
}

func feedback(ev tutor.Evaluation) string {
	if ev.Correction == "" {
		return ev.Feedback
	}
	return ev.Feedback + " → " + ev.Correction
}

func (s *SpeakScreen) play(text string) tea.Cmd {
	if !s.env.CanSpeak() {
		s.status = describe(speech.ErrUnavailable)
		return nil
	}
	ctx, seq := s.playback.Start(s.ctx)
	e := s.env
	return func() tea.Msg {
		return playedMsg{seq: seq, err: e.Speak(ctx, text)}
	}
}

func (s *SpeakScreen) listen(turn int) tea.Cmd {
	if s.listening {
		return nil
	}
	if !s.env.CanListen() {
		s.status = describe(speech.ErrUnavailable)
		return nil
	}
	s.listening = true
	s.status = fmt.Sprintf("Recording for %s…", env.RecordDuration)
	ctx, e := s.ctx, s.env
	return func() tea.Msg {
		t, err := e.Listen(ctx)
		return listenMsg{turn: turn, transcript: t, err: err}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, speech.ErrUnavailable):
		return "Audio is not available. Configure a speech provider and an audio player or recorder."
	case errors.Is(err, env.ErrNoTutor):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func (s *SpeakScreen) View(width, height int) string {
	m := s.ws.Session.Speak
	cw := components.ContentWidth(width)

	switch {
	case s.err != nil:
		msg := theme.Incorrect.Render(describe(s.err))
		if s.env.Tutor != nil {
			msg += "\n\n" + theme.Hint.Render("Press Ctrl+G to try again.")
		}
		return components.Center(msg, width, height)
	case s.loading || !m.Ready():
		return components.Center(theme.Waiting.Render("Preparing questions…"), width, height)
	}

	i := m.Current()
	t := m.Turn(i)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", i+1, m.Len())))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(layout.Wrap(t.Question, cw-6)))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case t.Pending:
		b.WriteString(theme.Waiting.Render("Checking your answer…"))
	case t.State == practice.Correct:
		b.WriteString(theme.Correct.Render(layout.Wrap("✓ "+t.Feedback, cw-6)))
	case t.State == practice.Incorrect:
		b.WriteString(theme.Incorrect.Render(layout.Wrap("✗ "+t.Feedback, cw-6)))
	default:
		b.WriteString(theme.Hint.Render("Answer in a full sentence."))
	}
	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.status))
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar(m.CorrectCount(), m.Len(), cw-8).View())

	return components.Column(components.Card(b.String(), cw), width)
}

func (s *SpeakScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Record"},
		{Key: "Ctrl+L", Description: "Listen"},
		{Key: "PgUp/PgDn", Description: "Question"},
		{Key: "Ctrl+X", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}
