package exercise

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVocab() []VocabEntry {
	return []VocabEntry{
		{ID: "1", SourceTerm: "gehe", BaseForm: "gehen", TargetTerm: "to go"},
		{ID: "2", SourceTerm: "Hund", TargetTerm: "dog"},
		{ID: "3", SourceTerm: "läuft", BaseForm: "laufen", TargetTerm: "to run"},
		{ID: "4", SourceTerm: "schnell", TargetTerm: "fast"},
		{ID: "5", SourceTerm: "Kino", TargetTerm: "cinema"},
	}
}

func TestDirection_PromptAndAnswer(t *testing.T) {
	e := VocabEntry{SourceTerm: "gehe", BaseForm: "gehen", TargetTerm: "to go"}
	p, a := Forward.PromptAndAnswer(e)
	assert.Equal(t, "gehen", p)
	assert.Equal(t, "to go", a)

	p, a = Reverse.PromptAndAnswer(e)
	assert.Equal(t, "to go", p)
	assert.Equal(t, "gehen", a)

	e.BaseForm = " "
	_, a = Reverse.PromptAndAnswer(e)
	assert.Equal(t, "gehe", a)
}

func TestGenerateQuestions_OptionsValid(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	vocab := testVocab()
	for _, dir := range Directions() {
		t.Run(string(dir), func(t *testing.T) {
			for range 20 {
				qs := GenerateQuestions(vocab, dir, r)
				require.Len(t, qs, len(vocab))

				subjects := map[string]bool{}
				for _, q := range qs {
					subjects[q.SubjectID] = true
					require.Len(t, q.Options, QuizOptions)

					unique := map[string]int{}
					for _, o := range q.Options {
						unique[o]++
					}
					assert.Len(t, unique, QuizOptions, "options must be unique")
					assert.Equal(t, 1, unique[q.CorrectAnswer])
					assert.Nil(t, q.Selected)
					assert.Nil(t, q.IsCorrect)
				}
				assert.Len(t, subjects, len(vocab))
			}
		})
	}
}

func TestGenerateQuestions_Insufficient(t *testing.T) {
	three := testVocab()[:3]
	for _, dir := range Directions() {
		assert.Nil(t, GenerateQuestions(three, dir, nil), "direction %s", dir)
	}

	// Four entries but only three distinct translations.
	dup := testVocab()[:4]
	dup[3].TargetTerm = "dog"
	assert.Nil(t, GenerateQuestions(dup, Forward, nil))
	assert.NotNil(t, GenerateQuestions(dup, Reverse, nil))
}

func TestGenerateQuestions_DuplicateAnswersNeverRepeatInOptions(t *testing.T) {
	vocab := testVocab()
	vocab = append(vocab, VocabEntry{ID: "6", SourceTerm: "Köter", TargetTerm: "dog"})
	r := rand.New(rand.NewPCG(9, 9))
	for range 50 {
		for _, q := range GenerateQuestions(vocab, Forward, r) {
			unique := map[string]bool{}
			for _, o := range q.Options {
				unique[o] = true
			}
			assert.Len(t, unique, QuizOptions)
		}
	}
}

func TestQuestionsFor_OnlySubjects(t *testing.T) {
	vocab := testVocab()
	qs := QuestionsFor(vocab[4:], vocab, Forward, nil)
	require.Len(t, qs, 1)
	assert.Equal(t, "5", qs[0].SubjectID)
	assert.Equal(t, "Kino", qs[0].Prompt)
	assert.Equal(t, "cinema", qs[0].CorrectAnswer)
}

func TestQuizQuestion_Answer(t *testing.T) {
	qs := GenerateQuestions(testVocab(), Forward, rand.New(rand.NewPCG(1, 2)))
	require.NotEmpty(t, qs)
	q := qs[0]

	assert.False(t, q.Answered())
	var wrong string
	for _, o := range q.Options {
		if o != q.CorrectAnswer {
			wrong = o
			break
		}
	}
	assert.False(t, q.Answer(wrong))
	require.True(t, q.Answered())
	assert.Equal(t, wrong, *q.Selected)
	assert.False(t, *q.IsCorrect)

	assert.True(t, q.Answer(q.CorrectAnswer))
	assert.True(t, *q.IsCorrect)
}

func TestCountUniqueAnswers(t *testing.T) {
	vocab := testVocab()
	for i := range vocab {
		vocab[i].TargetTerm = fmt.Sprintf("t%d", i%2)
	}
	assert.Equal(t, 2, CountUniqueAnswers(vocab, Forward))
	assert.Equal(t, 5, CountUniqueAnswers(vocab, Reverse))
	assert.False(t, CanQuiz(vocab, Forward))
	assert.True(t, CanQuiz(vocab, Reverse))
}
