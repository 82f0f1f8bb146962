package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/exercise"
)

func TestCardsMode_Unavailable(t *testing.T) {
	m := NewCardsMode(testVocab(3), nil, testRand())
	for _, d := range exercise.Directions() {
		assert.False(t, m.Round(d).Available())
	}
	_, recorded := m.Answer("dog")
	assert.False(t, recorded)
	assert.False(t, m.AdvanceFrom(exercise.Forward, 0))
}

func TestCardsMode_AnswerAndAdvance(t *testing.T) {
	rec := newFakeRecorder()
	m := NewCardsMode(testVocab(4), rec, testRand())
	r := m.Active()
	require.Len(t, r.Questions, 4)

	assert.False(t, m.AdvanceFrom(exercise.Forward, 0), "unanswered question does not advance")

	q := r.Current()
	correct, recorded := m.Answer(q.CorrectAnswer)
	assert.True(t, correct)
	assert.True(t, recorded)

	_, recorded = m.Answer("anything")
	assert.False(t, recorded, "answers are final")

	assert.True(t, m.AdvanceFrom(exercise.Forward, 0))
	assert.False(t, m.AdvanceFrom(exercise.Forward, 0), "a second timer for the same question is stale")
	assert.Equal(t, 1, r.CurrentIndex)

	for !r.ShowResults {
		m.Answer(r.Current().CorrectAnswer)
		m.AdvanceFrom(m.Direction(), r.CurrentIndex)
	}
	correctCount, answered := r.Score()
	assert.Equal(t, 4, correctCount)
	assert.Equal(t, 4, answered)
	assert.Equal(t, 1, rec.marks[CardsKey(exercise.Forward)])
	assert.Zero(t, rec.marks[CardsKey(exercise.Reverse)])
}

func TestCardsMode_VocabularyAdditionAppends(t *testing.T) {
	rec := newFakeRecorder()
	m := NewCardsMode(testVocab(5), rec, testRand())
	r := m.Active()
	answerAll(m)
	require.True(t, r.ShowResults)
	before := append([]exercise.QuizQuestion(nil), r.Questions...)

	m.Reconcile(testVocab(6))
	r = m.Active()
	require.Len(t, r.Questions, 6)
	assert.Equal(t, before, r.Questions[:5])
	assert.False(t, r.Questions[5].Answered())
	assert.Equal(t, "f", r.Questions[5].SubjectID)
	assert.False(t, r.ShowResults)
	assert.Equal(t, 5, r.CurrentIndex)
	assert.False(t, rec.IsModeComplete(CardsKey(exercise.Forward)))
}

func TestCardsMode_VocabularyRemovalFilters(t *testing.T) {
	rec := newFakeRecorder()
	vocab := testVocab(6)
	m := NewCardsMode(vocab, rec, testRand())
	r := m.Active()

	// Answer everything except the question about "f".
	for !r.ShowResults {
		q := r.Current()
		if q.SubjectID == "f" {
			if r.CurrentIndex == len(r.Questions)-1 {
				break
			}
			r.CurrentIndex++
			continue
		}
		m.Answer(q.CorrectAnswer)
		m.AdvanceFrom(m.Direction(), r.CurrentIndex)
	}

	m.Reconcile(testVocab(5))
	r = m.Active()
	require.Len(t, r.Questions, 5)
	for _, q := range r.Questions {
		assert.NotEqual(t, "f", q.SubjectID)
	}
	assert.True(t, r.ShowResults, "all remaining questions were answered")
	assert.Less(t, r.CurrentIndex, 5)
	assert.Equal(t, 1, rec.resets[CardsKey(exercise.Forward)])
	assert.True(t, rec.IsModeComplete(CardsKey(exercise.Forward)))
}

func TestCardsMode_ReconcileBelowMinimum(t *testing.T) {
	m := NewCardsMode(testVocab(4), nil, testRand())
	m.Reconcile(testVocab(3))
	assert.False(t, m.Active().Available())

	m.Reconcile(testVocab(5))
	assert.Len(t, m.Active().Questions, 5)
}

func TestCardsMode_SameSizeKeepsRound(t *testing.T) {
	m := NewCardsMode(testVocab(4), nil, testRand())
	before := m.State()
	m.Reconcile(testVocab(4))
	assert.Equal(t, before, m.State())
}

func TestCardsMode_Restart(t *testing.T) {
	rec := newFakeRecorder()
	m := NewCardsMode(testVocab(4), rec, testRand())
	answerAll(m)

	m.Restart()
	r := m.Active()
	assert.False(t, r.ShowResults)
	assert.Equal(t, 0, r.CurrentIndex)
	_, answered := r.Score()
	assert.Zero(t, answered)
	assert.False(t, rec.IsModeComplete(CardsKey(exercise.Forward)))
}

func TestCardsMode_RestoreReconcilesChangedVocabulary(t *testing.T) {
	saved := NewCardsMode(testVocab(5), nil, testRand())
	answerAll(saved)
	st := saved.State()

	m := NewCardsMode(testVocab(6), nil, testRand())
	m.restore(st)
	r := m.Round(exercise.Forward)
	require.Len(t, r.Questions, 6)
	assert.Equal(t, st.Forward.Questions, r.Questions[:5])
	assert.False(t, r.ShowResults)
}

func TestCardsMode_AdvanceFollowsDirection(t *testing.T) {
	m := NewCardsMode(testVocab(4), nil, testRand())
	forward := m.Round(exercise.Forward)
	m.Answer(forward.Current().CorrectAnswer)

	m.SetDirection(exercise.Reverse)
	assert.True(t, m.AdvanceFrom(exercise.Forward, 0))
	assert.Equal(t, 1, forward.CurrentIndex)
	assert.Zero(t, m.Round(exercise.Reverse).CurrentIndex)
}

func TestCardsMode_SettleLeavesAnsweredCard(t *testing.T) {
	m := NewCardsMode(testVocab(4), nil, testRand())
	assert.False(t, m.Settle(), "nothing answered yet")

	r := m.Active()
	m.Answer(r.Current().CorrectAnswer)
	assert.True(t, m.Settle())
	assert.Equal(t, 1, r.CurrentIndex)
	assert.False(t, r.Current().Answered())

	for i := 1; i < len(r.Questions); i++ {
		r.CurrentIndex = i
		m.Answer(r.Current().CorrectAnswer)
	}
	assert.True(t, m.Settle())
	assert.True(t, r.ShowResults)
}

func TestCardsMode_RestoreSettlesAnsweredCard(t *testing.T) {
	m := NewCardsMode(testVocab(4), nil, testRand())
	m.Answer(m.Active().Current().CorrectAnswer)
	saved := m.State()
	require.Zero(t, saved.Forward.CurrentIndex)

	restored := NewCardsMode(testVocab(4), nil, testRand())
	restored.restore(saved)
	r := restored.Round(exercise.Forward)
	assert.Equal(t, 1, r.CurrentIndex)
	assert.True(t, r.Questions[0].Answered())
}
