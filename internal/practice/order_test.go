package practice

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSameWords(t *testing.T, it OrderItem) {
	t.Helper()
	require.ElementsMatch(t, it.Correct, slices.Concat(it.Pool, it.Placed))
}

func TestOrderMode_CorrectOrder(t *testing.T) {
	rec := newFakeRecorder()
	m := NewOrderMode([]string{"Der Hund läuft schnell."}, rec, testRand())
	require.Equal(t, 1, m.Len())

	it := m.Item(0)
	assert.Equal(t, []string{"Der", "Hund", "läuft", "schnell."}, it.Correct)
	assert.ElementsMatch(t, it.Correct, it.Pool)

	for _, w := range it.Correct {
		m.Place(0, indexOf(m.Item(0).Pool, w))
	}
	assert.Equal(t, Correct, m.Item(0).State)
	assert.Equal(t, 1, rec.marks["order"])
}

func TestOrderMode_WrongOrder(t *testing.T) {
	m := NewOrderMode([]string{"Der Hund läuft schnell."}, nil, testRand())
	for _, w := range []string{"Hund", "Der", "läuft", "schnell."} {
		m.Place(0, indexOf(m.Item(0).Pool, w))
	}
	assert.Equal(t, Incorrect, m.Item(0).State)

	// Fixing the order through Move re-checks because the pool stays empty.
	m.Move(0, 1, 0)
	assert.Equal(t, []string{"Der", "Hund", "läuft", "schnell."}, m.Item(0).Placed)
	assert.Equal(t, Correct, m.Item(0).State)
}

func TestOrderMode_MovesPreserveWords(t *testing.T) {
	m := NewOrderMode([]string{"Die Kinder spielen im Garten und die Kinder lachen."}, nil, testRand())
	r := testRand()
	for range 500 {
		it := m.Item(0)
		switch r.IntN(3) {
		case 0:
			m.Place(0, r.IntN(len(it.Pool)+1))
		case 1:
			m.Unplace(0, r.IntN(len(it.Placed)+1))
		case 2:
			n := len(it.Placed) + 1
			m.Move(0, r.IntN(n), r.IntN(n))
		}
		requireSameWords(t, m.Item(0))
	}
}

func TestOrderMode_UnplaceReturnsToIdle(t *testing.T) {
	m := NewOrderMode([]string{"Der Hund läuft schnell."}, nil, testRand())
	for range 4 {
		m.Place(0, 0)
	}
	require.NotEqual(t, Idle, m.Item(0).State)

	m.Unplace(0, 2)
	it := m.Item(0)
	assert.Equal(t, Idle, it.State)
	assert.Len(t, it.Pool, 1)
	assert.Len(t, it.Placed, 3)
}

func TestOrderMode_ResetItem(t *testing.T) {
	m := NewOrderMode([]string{"Der Hund läuft schnell. Wir trinken Kaffee am Morgen."}, nil, testRand())
	m.Place(0, 0)
	m.Place(1, 0)
	m.ResetItem(0)

	assert.Empty(t, m.Item(0).Placed)
	requireSameWords(t, m.Item(0))
	assert.Len(t, m.Item(1).Placed, 1)
}

func TestOrderMode_ReconcileKeepsIndex(t *testing.T) {
	rec := newFakeRecorder()
	m := NewOrderMode([]string{"Der Hund läuft schnell. Wir trinken Kaffee am Morgen. Es ist kalt heute."}, rec, testRand())
	m.SetCurrent(2)

	m.Reconcile([]string{"Der Hund läuft schnell. Wir trinken Kaffee."})
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Current())
	assert.Equal(t, 1, rec.resets["order"])

	m.SetCurrent(1)
	m.Reconcile([]string{"Die Katze schläft lange. Wir trinken Tee."})
	assert.Equal(t, 1, m.Current())
	assert.Equal(t, 1, rec.resets["order"], "same size keeps state")
}

func TestOrderMode_ShortSentencesExcluded(t *testing.T) {
	m := NewOrderMode([]string{"Ja gut. Nein."}, nil, testRand())
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Complete())
	m.Place(0, 0)
}
