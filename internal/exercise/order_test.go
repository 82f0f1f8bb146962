package exercise

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	ex := PrepareOrder("Der Hund läuft schnell.", r)
	require.NotNil(t, ex)

	want := []string{"Der", "Hund", "läuft", "schnell."}
	assert.Equal(t, want, ex.Correct)
	assert.ElementsMatch(t, want, ex.Pool)

	assert.True(t, IsCorrectOrder(want, ex.Correct))
	assert.False(t, IsCorrectOrder([]string{"Hund", "Der", "läuft", "schnell."}, ex.Correct))
}

func TestPrepareOrder_TooShort(t *testing.T) {
	assert.Nil(t, PrepareOrder("Ja gut.", nil))
	assert.Nil(t, PrepareOrder("", nil))
	assert.NotNil(t, PrepareOrder("Ich bin hier.", nil))
}

func TestIsCorrectOrder_CaseAndPunctuation(t *testing.T) {
	correct := []string{"Der", "Hund", "läuft", "schnell."}
	assert.False(t, IsCorrectOrder([]string{"der", "Hund", "läuft", "schnell."}, correct))
	assert.False(t, IsCorrectOrder([]string{"Der", "Hund", "läuft", "schnell"}, correct))
	assert.False(t, IsCorrectOrder([]string{"Der", "Hund", "läuft"}, correct))
}

func TestBuildOrderExercises(t *testing.T) {
	paragraphs := []string{
		"Der Hund läuft schnell. Ja gut.",
		"Wir trinken Kaffee am Morgen.",
	}
	got := BuildOrderExercises(paragraphs, rand.New(rand.NewPCG(1, 1)))
	require.Len(t, got, 2)
	assert.Equal(t, "Der Hund läuft schnell.", got[0].Text)
	assert.Equal(t, "Wir trinken Kaffee am Morgen.", got[1].Text)
}
