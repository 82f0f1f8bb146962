package exercise

import (
	"math/rand/v2"
	"strings"
)

// MinOrderTokens is the minimum number of words a sentence needs for the
// ordering exercise.
const MinOrderTokens = 3

// OrderExercise is a sentence prepared for word ordering.
type OrderExercise struct {
	Text    string   `json:"text"`
	Correct []string `json:"correct"`
	Pool    []string `json:"pool"`
}

// PrepareOrder splits sentence on whitespace and shuffles the words.
// The shuffle is not seeded and may happen to return the original order.
// It returns nil for sentences with fewer than MinOrderTokens words.
func PrepareOrder(sentence string, r *rand.Rand) *OrderExercise {
	words := strings.Fields(sentence)
	if len(words) < MinOrderTokens {
		return nil
	}
	return &OrderExercise{
		Text:    sentence,
		Correct: words,
		Pool:    Shuffle(words, r),
	}
}

// BuildOrderExercises prepares every sentence of every paragraph.
func BuildOrderExercises(paragraphs []string, r *rand.Rand) []OrderExercise {
	var out []OrderExercise
	for _, p := range paragraphs {
		for _, s := range Segment(p) {
			if ex := PrepareOrder(s, r); ex != nil {
				out = append(out, *ex)
			}
		}
	}
	return out
}

// IsCorrectOrder reports whether placed spells out correct exactly,
// comparing the single-space joins of both. Case and punctuation matter.
func IsCorrectOrder(placed, correct []string) bool {
	return strings.Join(placed, " ") == strings.Join(correct, " ")
}
