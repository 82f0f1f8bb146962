package practice

import (
	"slices"
	"strings"

	"github.com/abhisek/lesezeit/internal/exercise"
)

// GapItem is the answer state of one gap sentence.
type GapItem struct {
	Answers       map[int]string  `json:"answers"`
	State         ValidationState `json:"state"`
	IncorrectGaps []int           `json:"incorrect_gaps,omitempty"`
}

func newGapItem() GapItem {
	return GapItem{Answers: make(map[int]string), State: Idle}
}

// GapMode drives the fill (word bank) and write (typed) modes.
type GapMode struct {
	mode      Mode
	sentences []exercise.GapSentence
	rec       Recorder
	state     ModeState[GapItem]
	done      completion
}

// NewGapMode builds fresh state for sentences. mode is ModeFill or
// ModeWrite.
func NewGapMode(mode Mode, sentences []exercise.GapSentence, rec Recorder) *GapMode {
	m := &GapMode{
		mode:      mode,
		sentences: sentences,
		rec:       rec,
		done:      completion{key: string(mode)},
	}
	m.state = m.fresh()
	return m
}

func (m *GapMode) fresh() ModeState[GapItem] {
	st := ModeState[GapItem]{
		Items:       make(map[int]GapItem, len(m.sentences)),
		Initialized: true,
		SourceCount: len(m.sentences),
	}
	for i := range m.sentences {
		st.Items[i] = newGapItem()
	}
	return st
}

// Mode returns ModeFill or ModeWrite.
func (m *GapMode) Mode() Mode { return m.mode }

// Len returns the number of sentences.
func (m *GapMode) Len() int { return len(m.sentences) }

// Current returns the index of the active sentence.
func (m *GapMode) Current() int { return m.state.CurrentIndex }

// SetCurrent moves to sentence i, clamped into range.
func (m *GapMode) SetCurrent(i int) {
	m.state.CurrentIndex = clampIndex(i, len(m.sentences))
}

// Sentence returns sentence i.
func (m *GapMode) Sentence(i int) exercise.GapSentence {
	return m.sentences[i]
}

// Item returns a copy of the state of sentence i.
func (m *GapMode) Item(i int) GapItem {
	it, ok := m.state.Items[i]
	if !ok {
		return newGapItem()
	}
	out := it
	out.Answers = make(map[int]string, len(it.Answers))
	for k, v := range it.Answers {
		out.Answers[k] = v
	}
	out.IncorrectGaps = slices.Clone(it.IncorrectGaps)
	return out
}

func (m *GapMode) valid(i int) bool {
	return i >= 0 && i < len(m.sentences)
}

func (m *GapMode) hasGap(i, gapID int) bool {
	_, ok := m.sentences[i].Template.Gap(gapID)
	return ok
}

// edit applies fn to sentence i, drops the item back to idle and runs the
// auto-check when every gap is filled.
func (m *GapMode) edit(i int, fn func(it *GapItem)) {
	it := m.Item(i)
	fn(&it)
	it.State = Idle
	it.IncorrectGaps = nil
	m.state.Items[i] = it
	if m.filled(i) {
		m.Check(i)
		return
	}
	m.done.observe(m.rec, m.Complete())
}

// Place puts a bank word into a gap. A word already sitting in another gap
// of the same sentence moves to the new gap.
func (m *GapMode) Place(i, gapID int, word string) {
	if !m.valid(i) || !m.hasGap(i, gapID) {
		return
	}
	m.edit(i, func(it *GapItem) {
		if !slices.Contains(m.Bank(i), word) {
			for id, w := range it.Answers {
				if w == word && id != gapID {
					delete(it.Answers, id)
					break
				}
			}
		}
		it.Answers[gapID] = word
	})
}

// Type sets the typed text of a gap.
func (m *GapMode) Type(i, gapID int, text string) {
	if !m.valid(i) || !m.hasGap(i, gapID) {
		return
	}
	m.edit(i, func(it *GapItem) {
		if text == "" {
			delete(it.Answers, gapID)
			return
		}
		it.Answers[gapID] = text
	})
}

// Clear empties a gap.
func (m *GapMode) Clear(i, gapID int) {
	if !m.valid(i) || !m.hasGap(i, gapID) {
		return
	}
	m.edit(i, func(it *GapItem) { delete(it.Answers, gapID) })
}

// Bank returns the word bank of sentence i without the words already
// placed.
func (m *GapMode) Bank(i int) []string {
	if !m.valid(i) {
		return nil
	}
	bank := exercise.WordBank(m.sentences[i])
	for _, w := range m.state.Items[i].Answers {
		if idx := slices.Index(bank, w); idx >= 0 {
			bank = slices.Delete(bank, idx, idx+1)
		}
	}
	return bank
}

func (m *GapMode) filled(i int) bool {
	it := m.state.Items[i]
	for _, id := range m.sentences[i].Template.GapIDs() {
		if strings.TrimSpace(it.Answers[id]) == "" {
			return false
		}
	}
	return true
}

// Check validates sentence i and returns the new state.
func (m *GapMode) Check(i int) ValidationState {
	if !m.valid(i) {
		return Idle
	}
	it := m.Item(i)
	it.IncorrectGaps = nil
	for _, g := range m.sentences[i].Template.Gaps() {
		if !exercise.MatchesGap(it.Answers[g.GapID], g.Original) {
			it.IncorrectGaps = append(it.IncorrectGaps, g.GapID)
		}
	}
	it.State = Correct
	if len(it.IncorrectGaps) > 0 {
		it.State = Incorrect
	}
	m.state.Items[i] = it
	m.done.observe(m.rec, m.Complete())
	return it.State
}

// ResetItem clears the answers of sentence i only.
func (m *GapMode) ResetItem(i int) {
	if !m.valid(i) {
		return
	}
	m.state.Items[i] = newGapItem()
	m.done.observe(m.rec, m.Complete())
}

// Reset regenerates every item and clears the completion status.
func (m *GapMode) Reset() {
	m.state = m.fresh()
	m.done.reset(m.rec)
}

// CorrectCount returns the number of sentences checked correct.
func (m *GapMode) CorrectCount() int {
	n := 0
	for i := range m.sentences {
		if m.state.Items[i].State == Correct {
			n++
		}
	}
	return n
}

// Complete reports whether every sentence is correct. A mode without
// sentences is never complete.
func (m *GapMode) Complete() bool {
	return len(m.sentences) > 0 && m.CorrectCount() == len(m.sentences)
}

// Reconcile swaps in a new sentence set. Equal sizes keep the state as is;
// otherwise everything is regenerated and completion is cleared.
func (m *GapMode) Reconcile(sentences []exercise.GapSentence) {
	if len(sentences) == m.state.SourceCount {
		m.sentences = sentences
		return
	}
	m.sentences = sentences
	m.Reset()
}

// State returns the persisted form of the mode.
func (m *GapMode) State() ModeState[GapItem] {
	return m.state
}

// restore adopts a saved state when it was built from the same number of
// sentences.
func (m *GapMode) restore(st ModeState[GapItem]) {
	if !st.Initialized || st.SourceCount != len(m.sentences) {
		return
	}
	items := make(map[int]GapItem, len(m.sentences))
	for i := range m.sentences {
		it, ok := st.Items[i]
		if !ok {
			it = newGapItem()
		}
		if it.Answers == nil {
			it.Answers = make(map[int]string)
		}
		it.State = normalizeState(it.State)
		items[i] = it
	}
	m.state = ModeState[GapItem]{
		CurrentIndex: clampIndex(st.CurrentIndex, len(m.sentences)),
		Items:        items,
		Initialized:  true,
		SourceCount:  len(m.sentences),
	}
	m.done.done = m.Complete()
}
