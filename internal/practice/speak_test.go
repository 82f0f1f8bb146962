package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakMode_Evaluation(t *testing.T) {
	rec := newFakeRecorder()
	m := NewSpeakMode(rec)
	assert.False(t, m.Ready())

	m.SetQuestions([]string{"Wohin gehst du?", "Was trinkst du?"})
	require.True(t, m.Ready())

	require.True(t, m.Record(0, " Ins Kino. "))
	assert.True(t, m.Turn(0).Pending)

	assert.True(t, m.ApplyEvaluation(0, "Ins Kino.", Evaluation{Acceptable: true, Feedback: "Gut!"}))
	assert.Equal(t, Correct, m.Turn(0).State)
	assert.Equal(t, "Gut!", m.Turn(0).Feedback)

	m.Record(1, "Kaffee.")
	m.ApplyEvaluation(1, "Kaffee.", Evaluation{Acceptable: true})
	assert.True(t, m.Complete())
	assert.Equal(t, 1, rec.marks["speak"])
}

func TestSpeakMode_StaleEvaluationDropped(t *testing.T) {
	m := NewSpeakMode(nil)
	m.SetQuestions([]string{"Wohin gehst du?"})

	m.Record(0, "Nach Hause.")
	m.Record(0, "Ins Kino.")
	assert.False(t, m.ApplyEvaluation(0, "Nach Hause.", Evaluation{Acceptable: false}))
	assert.Equal(t, Idle, m.Turn(0).State)
	assert.True(t, m.Turn(0).Pending)

	assert.True(t, m.ApplyEvaluation(0, "Ins Kino.", Evaluation{Acceptable: false}))
	assert.Equal(t, Incorrect, m.Turn(0).State)
	assert.False(t, m.ApplyEvaluation(0, "Ins Kino.", Evaluation{Acceptable: true}), "applied once")
}

func TestSpeakMode_EmptyTranscriptNotEvaluated(t *testing.T) {
	m := NewSpeakMode(nil)
	m.SetQuestions([]string{"Wohin gehst du?"})
	assert.False(t, m.Record(0, "   "))
	assert.False(t, m.Turn(0).Pending)
}

func TestSpeakMode_FailEvaluation(t *testing.T) {
	m := NewSpeakMode(nil)
	m.SetQuestions([]string{"Wohin gehst du?"})
	m.Record(0, "Ins Kino.")
	m.FailEvaluation(0, "Ins Kino.")
	assert.False(t, m.Turn(0).Pending)
	assert.Equal(t, Idle, m.Turn(0).State)
}

func TestSpeakMode_ResetAndSetQuestions(t *testing.T) {
	rec := newFakeRecorder()
	m := NewSpeakMode(rec)
	m.SetQuestions([]string{"A?"})
	m.Record(0, "B.")
	m.ApplyEvaluation(0, "B.", Evaluation{Acceptable: true})
	require.True(t, rec.IsModeComplete("speak"))

	m.SetQuestions([]string{"C?"})
	assert.Equal(t, "B.", m.Turn(0).Transcript, "same size keeps the dialogue")

	m.ResetItem(0)
	assert.Empty(t, m.Turn(0).Transcript)
	assert.Equal(t, "A?", m.Turn(0).Question)

	m.Reset()
	assert.False(t, m.Ready())
	assert.False(t, rec.IsModeComplete("speak"))
}
