package practice

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/lesezeit/internal/exercise"
)

// OrderItem is the state of one ordering sentence. Pool and Placed together
// always hold exactly the words of Correct.
type OrderItem struct {
	Text    string          `json:"text"`
	Correct []string        `json:"correct"`
	Pool    []string        `json:"pool"`
	Placed  []string        `json:"placed"`
	State   ValidationState `json:"state"`
}

func newOrderItem(ex exercise.OrderExercise) OrderItem {
	return OrderItem{
		Text:    ex.Text,
		Correct: slices.Clone(ex.Correct),
		Pool:    slices.Clone(ex.Pool),
		Placed:  []string{},
		State:   Idle,
	}
}

// OrderMode drives the sentence ordering mode.
type OrderMode struct {
	paragraphs []string
	rng        *rand.Rand
	rec        Recorder
	state      ModeState[OrderItem]
	done       completion
}

// NewOrderMode prepares every sentence of paragraphs for ordering.
func NewOrderMode(paragraphs []string, rec Recorder, r *rand.Rand) *OrderMode {
	m := &OrderMode{
		paragraphs: paragraphs,
		rng:        r,
		rec:        rec,
		done:       completion{key: string(ModeOrder)},
	}
	m.state = m.fresh()
	return m
}

func (m *OrderMode) fresh() ModeState[OrderItem] {
	exs := exercise.BuildOrderExercises(m.paragraphs, m.rng)
	st := ModeState[OrderItem]{
		Items:       make(map[int]OrderItem, len(exs)),
		Initialized: true,
		SourceCount: len(exs),
	}
	for i, ex := range exs {
		st.Items[i] = newOrderItem(ex)
	}
	return st
}

// Len returns the number of sentences.
func (m *OrderMode) Len() int { return m.state.SourceCount }

// Current returns the index of the active sentence.
func (m *OrderMode) Current() int { return m.state.CurrentIndex }

// SetCurrent moves to sentence i, clamped into range.
func (m *OrderMode) SetCurrent(i int) {
	m.state.CurrentIndex = clampIndex(i, m.Len())
}

// Item returns a copy of the state of sentence i.
func (m *OrderMode) Item(i int) OrderItem {
	it := m.state.Items[i]
	it.Correct = slices.Clone(it.Correct)
	it.Pool = slices.Clone(it.Pool)
	it.Placed = slices.Clone(it.Placed)
	return it
}

func (m *OrderMode) valid(i int) bool {
	return i >= 0 && i < m.Len()
}

func (m *OrderMode) edit(i int, fn func(it *OrderItem) bool) {
	if !m.valid(i) {
		return
	}
	it := m.Item(i)
	if !fn(&it) {
		return
	}
	it.State = Idle
	m.state.Items[i] = it
	if len(it.Pool) == 0 {
		m.Check(i)
		return
	}
	m.done.observe(m.rec, m.Complete())
}

// Place moves the word at poolIdx to the end of the placed sequence.
func (m *OrderMode) Place(i, poolIdx int) {
	m.edit(i, func(it *OrderItem) bool {
		if poolIdx < 0 || poolIdx >= len(it.Pool) {
			return false
		}
		it.Placed = append(it.Placed, it.Pool[poolIdx])
		it.Pool = slices.Delete(it.Pool, poolIdx, poolIdx+1)
		return true
	})
}

// Unplace returns the placed word at placedIdx to the end of the pool.
func (m *OrderMode) Unplace(i, placedIdx int) {
	m.edit(i, func(it *OrderItem) bool {
		if placedIdx < 0 || placedIdx >= len(it.Placed) {
			return false
		}
		it.Pool = append(it.Pool, it.Placed[placedIdx])
		it.Placed = slices.Delete(it.Placed, placedIdx, placedIdx+1)
		return true
	})
}

// Move reorders the placed sequence, moving the word at from to index to.
func (m *OrderMode) Move(i, from, to int) {
	m.edit(i, func(it *OrderItem) bool {
		n := len(it.Placed)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return false
		}
		w := it.Placed[from]
		it.Placed = slices.Delete(it.Placed, from, from+1)
		it.Placed = slices.Insert(it.Placed, to, w)
		return true
	})
}

// Check validates sentence i and returns the new state.
func (m *OrderMode) Check(i int) ValidationState {
	if !m.valid(i) {
		return Idle
	}
	it := m.state.Items[i]
	it.State = Incorrect
	if exercise.IsCorrectOrder(it.Placed, it.Correct) {
		it.State = Correct
	}
	m.state.Items[i] = it
	m.done.observe(m.rec, m.Complete())
	return it.State
}

// ResetItem puts every word of sentence i back into the pool.
func (m *OrderMode) ResetItem(i int) {
	if !m.valid(i) {
		return
	}
	it := m.state.Items[i]
	m.state.Items[i] = OrderItem{
		Text:    it.Text,
		Correct: it.Correct,
		Pool:    exercise.Shuffle(it.Correct, m.rng),
		Placed:  []string{},
		State:   Idle,
	}
	m.done.observe(m.rec, m.Complete())
}

// Reset reshuffles every sentence and clears the completion status.
func (m *OrderMode) Reset() {
	m.state = m.fresh()
	m.done.reset(m.rec)
}

// CorrectCount returns the number of sentences checked correct.
func (m *OrderMode) CorrectCount() int {
	n := 0
	for i := range m.Len() {
		if m.state.Items[i].State == Correct {
			n++
		}
	}
	return n
}

// Complete reports whether every sentence is correct.
func (m *OrderMode) Complete() bool {
	return m.Len() > 0 && m.CorrectCount() == m.Len()
}

// Reconcile swaps in new paragraphs. When the sentence count changes the
// mode is regenerated, keeping the current index clamped into range.
func (m *OrderMode) Reconcile(paragraphs []string) {
	m.paragraphs = paragraphs
	if len(exercise.BuildOrderExercises(paragraphs, m.rng)) == m.state.SourceCount {
		return
	}
	idx := m.state.CurrentIndex
	m.Reset()
	m.SetCurrent(idx)
}

// State returns the persisted form of the mode.
func (m *OrderMode) State() ModeState[OrderItem] {
	return m.state
}

func (m *OrderMode) restore(st ModeState[OrderItem]) {
	if !st.Initialized {
		return
	}
	if st.SourceCount != m.state.SourceCount {
		m.SetCurrent(st.CurrentIndex)
		return
	}
	items := make(map[int]OrderItem, m.Len())
	for i := range m.Len() {
		it, ok := st.Items[i]
		if !ok || it.Text != m.state.Items[i].Text || !sameWords(it) {
			it = m.state.Items[i]
		}
		if it.Placed == nil {
			it.Placed = []string{}
		}
		it.State = normalizeState(it.State)
		items[i] = it
	}
	m.state = ModeState[OrderItem]{
		CurrentIndex: clampIndex(st.CurrentIndex, m.Len()),
		Items:        items,
		Initialized:  true,
		SourceCount:  m.Len(),
	}
	m.done.done = m.Complete()
}

// sameWords reports whether Pool and Placed hold exactly the words of
// Correct.
func sameWords(it OrderItem) bool {
	if len(it.Correct) == 0 {
		return false
	}
	have := slices.Concat(it.Pool, it.Placed)
	want := slices.Clone(it.Correct)
	slices.Sort(have)
	slices.Sort(want)
	return slices.Equal(have, want)
}
