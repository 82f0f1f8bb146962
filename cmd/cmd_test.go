package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/progress"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/store"
	"github.com/abhisek/lesezeit/internal/vocab"
)

func TestSplitTextRef(t *testing.T) {
	topic, text, err := splitTextRef("alltag/cafe")
	require.NoError(t, err)
	assert.Equal(t, "alltag", topic)
	assert.Equal(t, "cafe", text)

	for _, bad := range []string{"", "alltag", "alltag/", "/cafe"} {
		_, _, err := splitTextRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestModeMarks(t *testing.T) {
	assert.Equal(t, ".....", modeMarks(nil))
	assert.Equal(t, "C..O.", modeMarks([]practice.Mode{practice.ModeOrder, practice.ModeCards}))
}

func TestResetText(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	e := &env.Env{
		Vocab:    vocab.NewStore(st.VocabRepo()),
		Progress: progress.NewService(st.ProgressRepo()),
		Practice: st.PracticeRepo(),
	}
	require.NoError(t, st.PracticeRepo().Save(ctx, "alltag", "cafe", []byte(`{}`)))
	rec, err := e.Progress.For(ctx, "alltag", "cafe")
	require.NoError(t, err)
	rec.MarkModeComplete("fill")
	_, err = e.Vocab.Add(ctx, vocab.Entry{TopicID: "alltag", TextID: "cafe", SourceTerm: "Kaffee", TargetTerm: "coffee"})
	require.NoError(t, err)

	require.NoError(t, resetText(ctx, e, st.PracticeRepo().Delete, "alltag", "cafe", false))

	blob, err := st.PracticeRepo().Load(ctx, "alltag", "cafe")
	require.NoError(t, err)
	assert.Nil(t, blob)
	done, err := e.Progress.Completed(ctx, "alltag", "cafe")
	require.NoError(t, err)
	assert.Empty(t, done)
	words, err := e.Vocab.List(ctx, "alltag", "cafe")
	require.NoError(t, err)
	assert.Len(t, words, 1, "words are kept without --vocab")

	require.NoError(t, resetText(ctx, e, st.PracticeRepo().Delete, "alltag", "cafe", true))
	words, err = e.Vocab.List(ctx, "alltag", "cafe")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestWriteEventList(t *testing.T) {
	var b strings.Builder
	writeEventList(&b, nil)
	assert.Equal(t, "No LLM calls logged.\n", b.String())

	b.Reset()
	writeEventList(&b, []store.LLMEventRecord{{
		ID:        7,
		Timestamp: time.Now(),
		LLMRequestEventData: store.LLMRequestEventData{
			Model: "mock", Purpose: "translate", InputTokens: 12, OutputTokens: 3, Success: false,
		},
	}})
	assert.Contains(t, b.String(), "translate")
	assert.Contains(t, b.String(), "✗")
}

func TestWriteEvent_NotCaptured(t *testing.T) {
	var b strings.Builder
	writeEvent(&b, &store.LLMEventRecord{ID: 3, LLMRequestEventData: store.LLMRequestEventData{ErrorMessage: "rate limited"}})
	assert.Contains(t, b.String(), "Error:     rate limited")
	assert.Equal(t, 2, strings.Count(b.String(), "(not captured)"))
}

func TestWriteUsage(t *testing.T) {
	var b strings.Builder
	writeUsage(&b,
		[]store.PurposeUsage{{Purpose: "define", Calls: 2, InputTokens: 1000, OutputTokens: 200}},
		[]store.ModelUsage{{Model: "mystery-1", Calls: 2, InputTokens: 1000, OutputTokens: 200}},
	)
	out := b.String()
	assert.Contains(t, out, "define")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: mystery-1")
}
