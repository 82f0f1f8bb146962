package practice

import "strings"

// Turn is one question of a spoken dialogue and the learner's answer.
type Turn struct {
	Question   string          `json:"question"`
	Transcript string          `json:"transcript,omitempty"`
	Pending    bool            `json:"pending,omitempty"`
	Feedback   string          `json:"feedback,omitempty"`
	State      ValidationState `json:"state"`
}

// Evaluation is the verdict on one transcript.
type Evaluation struct {
	Acceptable bool
	Feedback   string
}

// SpeakMode drives the spoken dialogue mode. Questions are generated
// elsewhere and handed in with SetQuestions.
type SpeakMode struct {
	rec   Recorder
	state ModeState[Turn]
	done  completion
}

// NewSpeakMode returns a mode without questions.
func NewSpeakMode(rec Recorder) *SpeakMode {
	return &SpeakMode{
		rec:   rec,
		state: ModeState[Turn]{Items: make(map[int]Turn)},
		done:  completion{key: string(ModeSpeak)},
	}
}

// Ready reports whether questions have been set.
func (m *SpeakMode) Ready() bool {
	return m.state.Initialized && m.state.SourceCount > 0
}

// SetQuestions replaces the dialogue. A question list of a different length
// than the current one starts over and clears the completion status.
func (m *SpeakMode) SetQuestions(questions []string) {
	if m.state.Initialized && len(questions) == m.state.SourceCount {
		return
	}
	st := ModeState[Turn]{
		Items:       make(map[int]Turn, len(questions)),
		Initialized: true,
		SourceCount: len(questions),
	}
	for i, q := range questions {
		st.Items[i] = Turn{Question: q, State: Idle}
	}
	m.state = st
	m.done.reset(m.rec)
}

// Len returns the number of turns.
func (m *SpeakMode) Len() int { return m.state.SourceCount }

// Current returns the index of the active turn.
func (m *SpeakMode) Current() int { return m.state.CurrentIndex }

// SetCurrent moves to turn i, clamped into range.
func (m *SpeakMode) SetCurrent(i int) {
	m.state.CurrentIndex = clampIndex(i, m.Len())
}

// Turn returns turn i.
func (m *SpeakMode) Turn(i int) Turn {
	return m.state.Items[i]
}

func (m *SpeakMode) valid(i int) bool {
	return i >= 0 && i < m.Len()
}

// Record stores a transcript for turn i and marks it pending evaluation.
// It reports whether an evaluation should be requested.
func (m *SpeakMode) Record(i int, transcript string) bool {
	if !m.valid(i) {
		return false
	}
	transcript = strings.TrimSpace(transcript)
	t := m.state.Items[i]
	t.Transcript = transcript
	t.Feedback = ""
	t.State = Idle
	t.Pending = transcript != ""
	m.state.Items[i] = t
	m.done.observe(m.rec, m.Complete())
	return t.Pending
}

// ApplyEvaluation applies ev to turn i if transcript is still the turn's
// current transcript. Late results for a replaced answer are dropped.
func (m *SpeakMode) ApplyEvaluation(i int, transcript string, ev Evaluation) bool {
	if !m.valid(i) {
		return false
	}
	t := m.state.Items[i]
	if !t.Pending || t.Transcript != strings.TrimSpace(transcript) {
		return false
	}
	t.Pending = false
	t.Feedback = ev.Feedback
	t.State = Incorrect
	if ev.Acceptable {
		t.State = Correct
	}
	m.state.Items[i] = t
	m.done.observe(m.rec, m.Complete())
	return true
}

// FailEvaluation clears the pending flag of turn i after an evaluation
// error, leaving the turn idle.
func (m *SpeakMode) FailEvaluation(i int, transcript string) {
	if !m.valid(i) {
		return
	}
	t := m.state.Items[i]
	if t.Transcript != strings.TrimSpace(transcript) {
		return
	}
	t.Pending = false
	m.state.Items[i] = t
}

// ResetItem clears the answer of turn i.
func (m *SpeakMode) ResetItem(i int) {
	if !m.valid(i) {
		return
	}
	m.state.Items[i] = Turn{Question: m.state.Items[i].Question, State: Idle}
	m.done.observe(m.rec, m.Complete())
}

// Reset drops the dialogue so that new questions are generated, and clears
// the completion status.
func (m *SpeakMode) Reset() {
	m.state = ModeState[Turn]{Items: make(map[int]Turn)}
	m.done.reset(m.rec)
}

// CorrectCount returns the number of accepted turns.
func (m *SpeakMode) CorrectCount() int {
	n := 0
	for i := range m.Len() {
		if m.state.Items[i].State == Correct {
			n++
		}
	}
	return n
}

// Complete reports whether every turn was accepted.
func (m *SpeakMode) Complete() bool {
	return m.Len() > 0 && m.CorrectCount() == m.Len()
}

// State returns the persisted form of the mode.
func (m *SpeakMode) State() ModeState[Turn] {
	return m.state
}

func (m *SpeakMode) restore(st ModeState[Turn]) {
	if !st.Initialized || st.SourceCount != len(st.Items) {
		return
	}
	items := make(map[int]Turn, st.SourceCount)
	for i := range st.SourceCount {
		t, ok := st.Items[i]
		if !ok || t.Question == "" {
			return
		}
		// An evaluation in flight when the state was saved never arrives.
		t.Pending = false
		t.State = normalizeState(t.State)
		items[i] = t
	}
	m.state = ModeState[Turn]{
		CurrentIndex: clampIndex(st.CurrentIndex, st.SourceCount),
		Items:        items,
		Initialized:  true,
		SourceCount:  st.SourceCount,
	}
	m.done.done = m.Complete()
}
