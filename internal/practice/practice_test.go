package practice

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/exercise"
)

type fakeRecorder struct {
	complete map[string]bool
	marks    map[string]int
	resets   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		complete: map[string]bool{},
		marks:    map[string]int{},
		resets:   map[string]int{},
	}
}

func (f *fakeRecorder) MarkModeComplete(key string) {
	f.complete[key] = true
	f.marks[key]++
}

func (f *fakeRecorder) IsModeComplete(key string) bool { return f.complete[key] }

func (f *fakeRecorder) ResetMode(key string) {
	delete(f.complete, key)
	f.resets[key]++
}

type memStore struct {
	blobs map[string][]byte
}

func (m *memStore) Load(_ context.Context, topicID, textID string) ([]byte, error) {
	return m.blobs[topicID+"/"+textID], nil
}

func (m *memStore) Save(_ context.Context, topicID, textID string, blob []byte) error {
	if m.blobs == nil {
		m.blobs = map[string][]byte{}
	}
	m.blobs[topicID+"/"+textID] = blob
	return nil
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(11, 12))
}

func testParagraphs() []string {
	return []string{
		"Ich gehe heute ins Kino. Der Hund läuft schnell.",
		"Wir trinken Kaffee am Morgen.",
	}
}

func testVocab(n int) []exercise.VocabEntry {
	all := []exercise.VocabEntry{
		{ID: "a", SourceTerm: "gehe", BaseForm: "gehen", TargetTerm: "to go"},
		{ID: "b", SourceTerm: "Hund", TargetTerm: "dog"},
		{ID: "c", SourceTerm: "läuft", BaseForm: "laufen", TargetTerm: "to run"},
		{ID: "d", SourceTerm: "schnell", TargetTerm: "fast"},
		{ID: "e", SourceTerm: "Kino", TargetTerm: "cinema"},
		{ID: "f", SourceTerm: "Kaffee", TargetTerm: "coffee"},
		{ID: "g", SourceTerm: "Morgen", TargetTerm: "morning"},
	}
	return all[:n]
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(string(m))
		require.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseMode("dance")
	assert.False(t, ok)
}

func TestCompletion_EmitsOnEachTransition(t *testing.T) {
	rec := newFakeRecorder()
	c := completion{key: "fill"}

	c.observe(rec, false)
	c.observe(rec, true)
	c.observe(rec, true)
	assert.Equal(t, 1, rec.marks["fill"])

	c.observe(rec, false)
	c.observe(rec, true)
	assert.Equal(t, 2, rec.marks["fill"])

	c.reset(rec)
	assert.False(t, rec.IsModeComplete("fill"))
	assert.Equal(t, 1, rec.resets["fill"])
}

func TestSession_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	rec := newFakeRecorder()
	st := &memStore{}
	src := Source{Paragraphs: testParagraphs(), Vocab: testVocab(5)}

	s := NewSession("alltag", "kino", src, rec, testRand())
	g := s.Fill.Sentence(0).Template.Gaps()[0]
	s.Fill.Place(0, g.GapID, g.Original)
	s.Order.Place(1, 0)
	q := s.Cards.Active().Current()
	s.Cards.Answer(q.CorrectAnswer)
	s.Speak.SetQuestions([]string{"Wohin gehst du heute?"})
	s.Speak.Record(0, "Ins Kino.")
	require.NoError(t, s.Save(ctx, st))

	loaded, err := Load(ctx, st, "alltag", "kino", src, rec, testRand())
	require.NoError(t, err)
	assert.Equal(t, s.Fill.Item(0).Answers, loaded.Fill.Item(0).Answers)
	assert.Equal(t, s.Order.Item(1), loaded.Order.Item(1))
	forward := loaded.Cards.Round(exercise.Forward)
	assert.Equal(t, s.Cards.Active().Questions, forward.Questions)
	assert.Equal(t, 1, forward.CurrentIndex, "an answered card is not restored as current")

	turn := loaded.Speak.Turn(0)
	assert.Equal(t, "Ins Kino.", turn.Transcript)
	assert.False(t, turn.Pending, "pending evaluations are not restored")
}

func TestSession_LoadWithoutSavedState(t *testing.T) {
	src := Source{Paragraphs: testParagraphs(), Vocab: testVocab(5)}
	s, err := Load(context.Background(), &memStore{}, "t", "x", src, nil, testRand())
	require.NoError(t, err)
	assert.Equal(t, 3, s.Fill.Len())
	assert.False(t, s.Speak.Ready())
}

func TestSession_RestoreTolerantOfPartialBlobs(t *testing.T) {
	src := Source{Paragraphs: testParagraphs(), Vocab: testVocab(5)}

	s := NewSession("t", "x", src, nil, testRand())
	require.NoError(t, s.Restore([]byte(`{"version":0,"fill":{"initialized":true,"source_count":3,"current_index":2,"items":{"1":{"answers":{}}}},"extra":42}`)))
	assert.Equal(t, 2, s.Fill.Current())
	assert.Equal(t, Idle, s.Fill.Item(1).State)
	assert.NotNil(t, s.Fill.Item(0).Answers)
	assert.Equal(t, 3, s.Write.Len())
	assert.True(t, s.Cards.Active().Available())
}

func TestSession_RestoreIgnoresStaleModes(t *testing.T) {
	src := Source{Paragraphs: testParagraphs(), Vocab: testVocab(5)}
	s := NewSession("t", "x", src, nil, testRand())
	require.NoError(t, s.Restore([]byte(`{"fill":{"initialized":true,"source_count":9,"current_index":7}}`)))
	assert.Equal(t, 0, s.Fill.Current())
}

func TestSession_RestoreRejectsGarbage(t *testing.T) {
	s := NewSession("t", "x", Source{Paragraphs: testParagraphs()}, nil, testRand())
	assert.Error(t, s.Restore([]byte("not json")))
}

func TestSession_ResetAndComplete(t *testing.T) {
	rec := newFakeRecorder()
	src := Source{Paragraphs: []string{"Der Hund läuft schnell."}, Vocab: testVocab(5)}
	s := NewSession("t", "x", src, rec, testRand())

	for _, w := range s.Order.Item(0).Correct {
		s.Order.Place(0, indexOf(s.Order.Item(0).Pool, w))
	}
	require.True(t, s.Complete(ModeOrder))

	s.Reset(ModeOrder)
	assert.False(t, s.Complete(ModeOrder))
	assert.Equal(t, 1, rec.resets["order"])
	assert.Empty(t, s.Order.Item(0).Placed)
}

func TestSession_CardsCompleteNeedsBothDirections(t *testing.T) {
	rec := newFakeRecorder()
	s := NewSession("t", "x", Source{Vocab: testVocab(4)}, rec, testRand())

	answerAll(s.Cards)
	assert.False(t, s.Complete(ModeCards))

	s.Cards.SetDirection(exercise.Reverse)
	answerAll(s.Cards)
	assert.True(t, s.Complete(ModeCards))
}

func TestSession_Reconcile(t *testing.T) {
	rec := newFakeRecorder()
	src := Source{Paragraphs: testParagraphs(), Vocab: testVocab(5)}
	s := NewSession("t", "x", src, rec, testRand())

	src.Vocab = testVocab(6)
	src.Paragraphs = append(src.Paragraphs, "Am Abend lesen wir ein Buch.")
	s.Reconcile(src)

	assert.Len(t, s.Cards.Round(exercise.Forward).Questions, 6)
	assert.Equal(t, 4, s.Fill.Len())
	assert.Equal(t, 4, s.Order.Len())
}

func indexOf(words []string, w string) int {
	for i, x := range words {
		if x == w {
			return i
		}
	}
	return -1
}

func answerAll(m *CardsMode) {
	r := m.Active()
	for !r.ShowResults {
		q := r.Current()
		m.Answer(q.CorrectAnswer)
		m.AdvanceFrom(m.Direction(), r.CurrentIndex)
	}
}
