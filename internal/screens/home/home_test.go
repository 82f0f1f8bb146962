package home

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/progress"
	"github.com/abhisek/lesezeit/internal/router"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/screens/reader"
	"github.com/abhisek/lesezeit/internal/store"
)

func newHome(t *testing.T) (*HomeScreen, *env.Env) {
	t.Helper()
	lib, err := content.Load(fstest.MapFS{
		"alltag/_topic.md":   {Data: []byte("# Alltag\n")},
		"alltag/01-cafe.md":  {Data: []byte("# Im Café\n\nIch trinke Kaffee.\n")},
		"alltag/02-markt.md": {Data: []byte("# Der Markt\n\nIch kaufe Obst.\n")},
	})
	require.NoError(t, err)

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	e := &env.Env{Library: lib, Progress: progress.NewService(st.ProgressRepo())}
	h := New(e)
	t.Cleanup(h.Close)
	return h, e
}

func TestHome_ListsTexts(t *testing.T) {
	h, _ := newHome(t)
	require.Len(t, h.menu.Items, 2)
	assert.Equal(t, "Alltag › Im Café", h.menu.Items[0].Label)
	assert.Equal(t, "Alltag › Der Markt", h.menu.Items[1].Label)
	assert.Contains(t, h.View(100, 30), "Im Café")
}

func TestHome_ReloadsProgressOnResume(t *testing.T) {
	h, e := newHome(t)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, h.entries[1].done)

	rec, err := e.Progress.For(context.Background(), "alltag", "markt")
	require.NoError(t, err)
	rec.MarkModeComplete("order")
	rec.MarkModeComplete("fill")
	require.True(t, h.stale.Load())

	h.Resume()
	assert.Equal(t, 2, h.entries[1].done)
	assert.Equal(t, 1, h.menu.Selected, "selection survives the reload")
	assert.False(t, h.stale.Load())
}

func TestHome_OpensReader(t *testing.T) {
	h, _ := newHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &reader.ReaderScreen{}, push.Screen)
	push.Screen.(*reader.ReaderScreen).Close()
}

func TestHome_Quit(t *testing.T) {
	h, _ := newHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
