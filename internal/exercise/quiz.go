package exercise

import (
	"math/rand/v2"
	"strings"
)

const (
	// QuizOptions is the number of options of every quiz question.
	QuizOptions = 4

	// MinQuizEntries is the smallest vocabulary that supports a quiz.
	MinQuizEntries = 4
)

// VocabEntry is a saved word as the quiz sees it.
type VocabEntry struct {
	ID         string
	SourceTerm string
	BaseForm   string
	TargetTerm string
}

// germanTerm is the form of the German side used in the quiz: the
// dictionary base form when one was saved, otherwise the word as clicked.
func (e VocabEntry) germanTerm() string {
	if strings.TrimSpace(e.BaseForm) != "" {
		return e.BaseForm
	}
	return e.SourceTerm
}

// Direction selects which side of a vocabulary entry is asked for.
type Direction string

const (
	// Forward shows the German term and asks for the translation.
	Forward Direction = "forward"

	// Reverse shows the translation and asks for the German term.
	Reverse Direction = "reverse"
)

// Directions lists both quiz directions in display order.
func Directions() []Direction {
	return []Direction{Forward, Reverse}
}

// PromptAndAnswer returns the question term and the expected answer of e.
func (d Direction) PromptAndAnswer(e VocabEntry) (prompt, answer string) {
	if d == Reverse {
		return e.TargetTerm, e.germanTerm()
	}
	return e.germanTerm(), e.TargetTerm
}

// QuizQuestion is one multiple-choice flashcard.
type QuizQuestion struct {
	SubjectID     string   `json:"subject_id"`
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	Selected      *string  `json:"selected,omitempty"`
	IsCorrect     *bool    `json:"is_correct,omitempty"`
}

// Answered reports whether an option was picked.
func (q *QuizQuestion) Answered() bool {
	return q.Selected != nil
}

// Answer records option as the learner's choice and returns whether it was
// correct.
func (q *QuizQuestion) Answer(option string) bool {
	correct := option == q.CorrectAnswer
	q.Selected = &option
	q.IsCorrect = &correct
	return correct
}

// CountUniqueAnswers counts distinct answer values of vocab for d.
func CountUniqueAnswers(vocab []VocabEntry, d Direction) int {
	seen := make(map[string]bool)
	for _, e := range vocab {
		_, a := d.PromptAndAnswer(e)
		seen[a] = true
	}
	return len(seen)
}

// CanQuiz reports whether vocab is large and varied enough for d.
func CanQuiz(vocab []VocabEntry, d Direction) bool {
	return len(vocab) >= MinQuizEntries && CountUniqueAnswers(vocab, d) >= QuizOptions
}

// GenerateQuestions builds one question per entry, in random order. It
// returns nil when CanQuiz is false.
func GenerateQuestions(vocab []VocabEntry, d Direction, r *rand.Rand) []QuizQuestion {
	if !CanQuiz(vocab, d) {
		return nil
	}
	return QuestionsFor(Shuffle(vocab, r), vocab, d, r)
}

// QuestionsFor builds questions for subjects, in the given order, drawing
// distractors from the answers of pool. It returns nil when pool cannot
// support a quiz.
func QuestionsFor(subjects, pool []VocabEntry, d Direction, r *rand.Rand) []QuizQuestion {
	if !CanQuiz(pool, d) {
		return nil
	}

	out := make([]QuizQuestion, 0, len(subjects))
	for _, e := range subjects {
		prompt, answer := d.PromptAndAnswer(e)

		var candidates []string
		seen := map[string]bool{answer: true}
		for _, other := range pool {
			if other.ID == e.ID {
				continue
			}
			_, a := d.PromptAndAnswer(other)
			if seen[a] {
				continue
			}
			seen[a] = true
			candidates = append(candidates, a)
		}
		if len(candidates) < QuizOptions-1 {
			continue
		}

		options := append(Shuffle(candidates, r)[:QuizOptions-1], answer)
		out = append(out, QuizQuestion{
			SubjectID:     e.ID,
			Prompt:        prompt,
			CorrectAnswer: answer,
			Options:       Shuffle(options, r),
		})
	}
	return out
}
