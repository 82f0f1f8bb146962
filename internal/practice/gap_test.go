package practice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/exercise"
)

func kinoMode(t *testing.T, mode Mode, rec Recorder) *GapMode {
	t.Helper()
	sentences := exercise.BuildGapSentences([]string{"Ich gehe heute ins Kino."})
	require.Len(t, sentences, 1)
	return NewGapMode(mode, sentences, rec)
}

func TestGapMode_TypingCorrectWordsAutoChecks(t *testing.T) {
	rec := newFakeRecorder()
	m := kinoMode(t, ModeWrite, rec)
	gaps := m.Sentence(0).Template.Gaps()
	require.Len(t, gaps, 2)

	m.Type(0, gaps[0].GapID, strings.ToUpper(gaps[0].Original))
	assert.Equal(t, Idle, m.Item(0).State)

	m.Type(0, gaps[1].GapID, " "+strings.ToLower(gaps[1].Original)+" ")
	assert.Equal(t, Correct, m.Item(0).State)
	assert.True(t, m.Complete())
	assert.Equal(t, 1, rec.marks["write"])
}

func TestGapMode_WrongAnswerMarksIncorrectGaps(t *testing.T) {
	m := kinoMode(t, ModeWrite, nil)
	gaps := m.Sentence(0).Template.Gaps()

	m.Type(0, gaps[0].GapID, gaps[0].Original)
	m.Type(0, gaps[1].GapID, "falsch")
	it := m.Item(0)
	assert.Equal(t, Incorrect, it.State)
	assert.Equal(t, []int{gaps[1].GapID}, it.IncorrectGaps)

	// Any edit drops back to idle before the next check.
	m.Clear(0, gaps[1].GapID)
	it = m.Item(0)
	assert.Equal(t, Idle, it.State)
	assert.Empty(t, it.IncorrectGaps)
}

func TestGapMode_BlankAnswerDoesNotCheck(t *testing.T) {
	m := kinoMode(t, ModeWrite, nil)
	gaps := m.Sentence(0).Template.Gaps()

	m.Type(0, gaps[0].GapID, gaps[0].Original)
	m.Type(0, gaps[1].GapID, "   ")
	it := m.Item(0)
	assert.Equal(t, Idle, it.State, "a gap holding only spaces is still empty")
	assert.Empty(t, it.IncorrectGaps)
}

func TestGapMode_BankPlacement(t *testing.T) {
	m := kinoMode(t, ModeFill, nil)
	gaps := m.Sentence(0).Template.Gaps()
	bank := m.Bank(0)
	require.Len(t, bank, 2)

	m.Place(0, gaps[0].GapID, gaps[1].Original)
	assert.Equal(t, []string{gaps[0].Original}, m.Bank(0))

	// Placing the same word again moves it to the new gap.
	m.Place(0, gaps[1].GapID, gaps[1].Original)
	it := m.Item(0)
	assert.NotContains(t, it.Answers, gaps[0].GapID)
	assert.Equal(t, gaps[1].Original, it.Answers[gaps[1].GapID])
	assert.Equal(t, Idle, it.State)

	m.Place(0, gaps[0].GapID, gaps[0].Original)
	assert.Equal(t, Correct, m.Item(0).State)
	assert.Empty(t, m.Bank(0))
}

func TestGapMode_ReachingCompleteAgainReemits(t *testing.T) {
	rec := newFakeRecorder()
	m := kinoMode(t, ModeFill, rec)
	gaps := m.Sentence(0).Template.Gaps()
	for _, g := range gaps {
		m.Place(0, g.GapID, g.Original)
	}
	require.Equal(t, 1, rec.marks["fill"])

	m.Clear(0, gaps[0].GapID)
	m.Place(0, gaps[0].GapID, gaps[0].Original)
	assert.Equal(t, 2, rec.marks["fill"])
}

func TestGapMode_ResetItemLeavesSiblings(t *testing.T) {
	sentences := exercise.BuildGapSentences([]string{"Ich gehe heute ins Kino. Wir trinken Kaffee am Morgen."})
	require.Len(t, sentences, 2)
	m := NewGapMode(ModeFill, sentences, nil)

	for i := range 2 {
		for _, g := range m.Sentence(i).Template.Gaps() {
			m.Place(i, g.GapID, g.Original)
		}
	}
	require.True(t, m.Complete())

	m.ResetItem(0)
	assert.Equal(t, Idle, m.Item(0).State)
	assert.Empty(t, m.Item(0).Answers)
	assert.Equal(t, Correct, m.Item(1).State)
	assert.False(t, m.Complete())
}

func TestGapMode_Reset(t *testing.T) {
	rec := newFakeRecorder()
	m := kinoMode(t, ModeFill, rec)
	for _, g := range m.Sentence(0).Template.Gaps() {
		m.Place(0, g.GapID, g.Original)
	}
	m.Reset()
	assert.Equal(t, Idle, m.Item(0).State)
	assert.False(t, rec.IsModeComplete("fill"))
	assert.Equal(t, 1, rec.resets["fill"])
}

func TestGapMode_IgnoresUnknownGapsAndItems(t *testing.T) {
	m := kinoMode(t, ModeWrite, nil)
	m.Type(0, 999, "x")
	m.Type(5, 0, "x")
	m.Clear(-1, 0)
	assert.Empty(t, m.Item(0).Answers)
	assert.Equal(t, Idle, m.Check(7))
}

func TestGapMode_Reconcile(t *testing.T) {
	rec := newFakeRecorder()
	one := exercise.BuildGapSentences([]string{"Ich gehe heute ins Kino."})
	m := NewGapMode(ModeFill, one, rec)
	g := m.Sentence(0).Template.Gaps()[0]
	m.Place(0, g.GapID, g.Original)

	m.Reconcile(exercise.BuildGapSentences([]string{"Ich gehe heute ins Kino."}))
	assert.NotEmpty(t, m.Item(0).Answers, "same size keeps state")

	m.Reconcile(exercise.BuildGapSentences([]string{"Ich gehe heute ins Kino. Wir trinken Kaffee am Morgen."}))
	assert.Equal(t, 2, m.Len())
	assert.Empty(t, m.Item(0).Answers)
	assert.Equal(t, 1, rec.resets["fill"])
}

func TestGapMode_EmptyIsNeverComplete(t *testing.T) {
	m := NewGapMode(ModeFill, nil, nil)
	assert.False(t, m.Complete())
	assert.Equal(t, 0, m.Len())
}
