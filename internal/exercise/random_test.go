package exercise

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"hello", 99162322},
		// Wraps to the smallest int32; the absolute value still fits a uint32.
		{"polygenelubricants", 2147483648},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.in))
		})
	}
}

func TestHash_Stable(t *testing.T) {
	s := "Ich gehe heute ins Kino."
	assert.Equal(t, Hash(s), Hash(s))
	assert.NotEqual(t, Hash(s), Hash("Ich gehe morgen ins Kino."))
}

func TestSeededShuffle_Deterministic(t *testing.T) {
	items := []string{"eins", "zwei", "drei", "vier", "fünf", "sechs"}
	a := SeededShuffle(items, 42)
	b := SeededShuffle(items, 42)
	assert.Equal(t, a, b)
	assert.ElementsMatch(t, items, a)
}

func TestSeededShuffle_DoesNotModifyInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	_ = SeededShuffle(items, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

func TestSeededShuffle_KnownSequence(t *testing.T) {
	// Seed 0: first draw is 49297/233280 ~ 0.211, so j = 0 for i = 1.
	got := SeededShuffle([]string{"a", "b"}, 0)
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestSeededShuffle_Empty(t *testing.T) {
	assert.Empty(t, SeededShuffle([]string{}, 1))
	assert.Empty(t, SeededShuffle[string](nil, 1))
}

func TestShuffle_IsPermutation(t *testing.T) {
	items := []string{"Der", "Hund", "läuft", "schnell."}
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		got := Shuffle(items, r)
		require.Len(t, got, len(items))
		assert.ElementsMatch(t, items, got)
	}
	assert.Equal(t, []string{"Der", "Hund", "läuft", "schnell."}, items)
}

func TestShuffle_NilSource(t *testing.T) {
	got := Shuffle([]int{1, 2, 3}, nil)
	assert.ElementsMatch(t, []int{1, 2, 3}, got)
}
