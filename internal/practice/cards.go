package practice

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/lesezeit/internal/exercise"
)

// CardsKey returns the progress key of one cards direction.
func CardsKey(d exercise.Direction) string {
	return string(ModeCards) + ":" + string(d)
}

// CardsRound is the quiz state of one direction.
type CardsRound struct {
	Questions    []exercise.QuizQuestion `json:"questions"`
	CurrentIndex int                     `json:"current_index"`
	ShowResults  bool                    `json:"show_results"`
	Initialized  bool                    `json:"initialized"`
	SourceCount  int                     `json:"source_count"`
}

// Available reports whether the round has questions.
func (r *CardsRound) Available() bool {
	return len(r.Questions) > 0
}

// Current returns the active question, or nil.
func (r *CardsRound) Current() *exercise.QuizQuestion {
	if r.CurrentIndex < 0 || r.CurrentIndex >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.CurrentIndex]
}

// Score returns the number of correct answers and the number of answered
// questions.
func (r *CardsRound) Score() (correct, answered int) {
	for _, q := range r.Questions {
		if !q.Answered() {
			continue
		}
		answered++
		if *q.IsCorrect {
			correct++
		}
	}
	return correct, answered
}

func (r *CardsRound) allAnswered() bool {
	_, answered := r.Score()
	return len(r.Questions) > 0 && answered == len(r.Questions)
}

func (r *CardsRound) allCorrect() bool {
	correct, _ := r.Score()
	return len(r.Questions) > 0 && correct == len(r.Questions)
}

// CardsState is the persisted form of the cards mode.
type CardsState struct {
	Direction exercise.Direction `json:"direction"`
	Forward   CardsRound         `json:"forward"`
	Reverse   CardsRound         `json:"reverse"`
}

// CardsMode drives the flashcard quiz in both directions.
type CardsMode struct {
	vocab     []exercise.VocabEntry
	rng       *rand.Rand
	rec       Recorder
	direction exercise.Direction
	rounds    map[exercise.Direction]*CardsRound
	done      map[exercise.Direction]*completion
}

// NewCardsMode generates a round per direction from vocab.
func NewCardsMode(vocab []exercise.VocabEntry, rec Recorder, r *rand.Rand) *CardsMode {
	m := &CardsMode{
		vocab:     vocab,
		rng:       r,
		rec:       rec,
		direction: exercise.Forward,
		rounds:    make(map[exercise.Direction]*CardsRound),
		done:      make(map[exercise.Direction]*completion),
	}
	for _, d := range exercise.Directions() {
		m.rounds[d] = m.freshRound(d)
		m.done[d] = &completion{key: CardsKey(d)}
	}
	return m
}

func (m *CardsMode) freshRound(d exercise.Direction) *CardsRound {
	return &CardsRound{
		Questions:   exercise.GenerateQuestions(m.vocab, d, m.rng),
		Initialized: true,
		SourceCount: len(m.vocab),
	}
}

// Direction returns the active direction.
func (m *CardsMode) Direction() exercise.Direction { return m.direction }

// SetDirection switches the active direction.
func (m *CardsMode) SetDirection(d exercise.Direction) {
	if _, ok := m.rounds[d]; ok {
		m.direction = d
	}
}

// Round returns the round of direction d.
func (m *CardsMode) Round(d exercise.Direction) *CardsRound {
	return m.rounds[d]
}

// Active returns the round of the active direction.
func (m *CardsMode) Active() *CardsRound {
	return m.rounds[m.direction]
}

// Answer records option for the current question of the active direction.
// Answered questions are left alone. It reports whether the option was
// correct and whether it was recorded.
func (m *CardsMode) Answer(option string) (correct, recorded bool) {
	r := m.Active()
	q := r.Current()
	if q == nil || r.ShowResults {
		return false, false
	}
	if q.Answered() {
		return *q.IsCorrect, false
	}
	correct = q.Answer(option)
	m.done[m.direction].observe(m.rec, r.allCorrect())
	return correct, true
}

// AdvanceFrom moves the round of direction d past question expected. It is
// a no-op unless that round is still on expected and the question is
// answered, so a stale delayed advance cannot skip a question. Advancing
// past the last question shows the results.
func (m *CardsMode) AdvanceFrom(d exercise.Direction, expected int) bool {
	r, ok := m.rounds[d]
	if !ok || r.CurrentIndex != expected {
		return false
	}
	return r.advance()
}

// Settle moves every round past answered questions, for rounds whose
// delayed advance never arrived. It reports whether any round moved.
func (m *CardsMode) Settle() bool {
	moved := false
	for _, d := range exercise.Directions() {
		for m.rounds[d].advance() {
			moved = true
		}
	}
	return moved
}

func (r *CardsRound) advance() bool {
	q := r.Current()
	if r.ShowResults || q == nil || !q.Answered() {
		return false
	}
	if r.CurrentIndex == len(r.Questions)-1 {
		r.ShowResults = true
		return true
	}
	r.CurrentIndex++
	return true
}

// Restart regenerates the active round and clears its completion.
func (m *CardsMode) Restart() {
	m.resetDirection(m.direction)
}

// Reset regenerates both rounds and clears their completion.
func (m *CardsMode) Reset() {
	for _, d := range exercise.Directions() {
		m.resetDirection(d)
	}
}

func (m *CardsMode) resetDirection(d exercise.Direction) {
	m.rounds[d] = m.freshRound(d)
	m.done[d].reset(m.rec)
}

// Complete reports whether both directions are fully correct.
func (m *CardsMode) Complete() bool {
	for _, d := range exercise.Directions() {
		if !m.rounds[d].allCorrect() {
			return false
		}
	}
	return true
}

// Reconcile adapts both rounds to a changed vocabulary. A vocabulary of the
// same size keeps the rounds unchanged. Otherwise questions for new entries
// are appended, questions for removed entries are dropped, answered ones are
// kept, and the direction's completion is cleared and re-evaluated.
func (m *CardsMode) Reconcile(vocab []exercise.VocabEntry) {
	m.vocab = vocab
	for _, d := range exercise.Directions() {
		r := m.rounds[d]
		if r.Initialized && r.SourceCount == len(vocab) {
			continue
		}
		m.reconcileRound(d, r)
		m.done[d].reset(m.rec)
		m.done[d].observe(m.rec, r.allCorrect())
	}
}

func (m *CardsMode) reconcileRound(d exercise.Direction, r *CardsRound) {
	r.Initialized = true
	r.SourceCount = len(m.vocab)

	if !exercise.CanQuiz(m.vocab, d) {
		*r = CardsRound{Initialized: true, SourceCount: len(m.vocab)}
		return
	}
	if len(r.Questions) == 0 {
		*r = *m.freshRound(d)
		return
	}

	ids := make(map[string]bool, len(m.vocab))
	for _, e := range m.vocab {
		ids[e.ID] = true
	}
	r.Questions = slices.DeleteFunc(r.Questions, func(q exercise.QuizQuestion) bool {
		return !ids[q.SubjectID]
	})

	have := make(map[string]bool, len(r.Questions))
	for _, q := range r.Questions {
		have[q.SubjectID] = true
	}
	var added []exercise.VocabEntry
	for _, e := range m.vocab {
		if !have[e.ID] {
			added = append(added, e)
		}
	}
	if len(added) > 0 {
		r.Questions = append(r.Questions, exercise.QuestionsFor(added, m.vocab, d, m.rng)...)
	}

	r.CurrentIndex = clampIndex(r.CurrentIndex, len(r.Questions))
	r.ShowResults = r.allAnswered()
	if cur := r.Current(); !r.ShowResults && cur != nil && cur.Answered() {
		r.CurrentIndex = slices.IndexFunc(r.Questions, func(q exercise.QuizQuestion) bool {
			return !q.Answered()
		})
	}
}

// State returns the persisted form of the mode.
func (m *CardsMode) State() CardsState {
	return CardsState{
		Direction: m.direction,
		Forward:   *m.rounds[exercise.Forward],
		Reverse:   *m.rounds[exercise.Reverse],
	}
}

func (m *CardsMode) restore(st CardsState) {
	m.SetDirection(st.Direction)
	saved := map[exercise.Direction]CardsRound{
		exercise.Forward: st.Forward,
		exercise.Reverse: st.Reverse,
	}
	for _, d := range exercise.Directions() {
		r := saved[d]
		if !r.Initialized || !validQuestions(r.Questions) {
			continue
		}
		r.Questions = slices.Clone(r.Questions)
		r.CurrentIndex = clampIndex(r.CurrentIndex, len(r.Questions))
		m.rounds[d] = &r
		if r.SourceCount != len(m.vocab) {
			m.reconcileRound(d, &r)
			m.done[d].reset(m.rec)
			m.done[d].observe(m.rec, r.allCorrect())
			continue
		}
		m.done[d].observe(nil, r.allCorrect())
	}
	m.Settle()
}

func validQuestions(qs []exercise.QuizQuestion) bool {
	for _, q := range qs {
		if len(q.Options) != exercise.QuizOptions || q.SubjectID == "" {
			return false
		}
		if q.Selected != nil && q.IsCorrect == nil {
			return false
		}
	}
	return true
}
