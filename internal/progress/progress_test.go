package progress

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s.ProgressRepo())
}

func TestRecorder_MarkIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var changes []Change
	unsub := svc.Subscribe(func(c Change) { changes = append(changes, c) })
	defer unsub()

	rec, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)

	rec.MarkModeComplete("fill")
	rec.MarkModeComplete("fill")
	assert.True(t, rec.IsModeComplete("fill"))
	assert.Len(t, changes, 1)

	keys, err := svc.Completed(ctx, "alltag", "kino")
	require.NoError(t, err)
	assert.Equal(t, []string{"fill"}, keys)
}

func TestRecorder_ResetMode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	rec, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)

	rec.MarkModeComplete("order")
	rec.ResetMode("order")
	assert.False(t, rec.IsModeComplete("order"))

	reloaded, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)
	assert.False(t, reloaded.IsModeComplete("order"))
}

func TestRecorder_LoadsSavedProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	rec, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)
	rec.MarkModeComplete("write")

	other, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)
	assert.True(t, other.IsModeComplete("write"))

	unrelated, err := svc.For(ctx, "alltag", "bahn")
	require.NoError(t, err)
	assert.False(t, unrelated.IsModeComplete("write"))
}

func TestModesFromKeys(t *testing.T) {
	assert.Equal(t, []practice.Mode{practice.ModeFill}, ModesFromKeys([]string{"fill", "cards:forward"}))
	assert.Equal(t,
		[]practice.Mode{practice.ModeCards, practice.ModeSpeak},
		ModesFromKeys([]string{"speak", "cards:reverse", "cards:forward"}),
	)
	assert.Empty(t, ModesFromKeys(nil))
}

func TestService_ResetText(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	rec, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)
	rec.MarkModeComplete("fill")
	rec.MarkModeComplete("speak")

	var resets int
	svc.Subscribe(func(c Change) {
		if !c.Complete {
			resets++
		}
	})

	require.NoError(t, svc.ResetText(ctx, "alltag", "kino"))
	assert.Equal(t, 2, resets)

	modes, err := svc.CompletedModes(ctx, "alltag", "kino")
	require.NoError(t, err)
	assert.Empty(t, modes)
}

func TestRecorder_DrivesPracticeCompletion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	rec, err := svc.For(ctx, "alltag", "kino")
	require.NoError(t, err)

	m := practice.NewOrderMode([]string{"Der Hund läuft schnell."}, rec, nil)
	for _, w := range m.Item(0).Correct {
		pool := m.Item(0).Pool
		for i, p := range pool {
			if p == w {
				m.Place(0, i)
				break
			}
		}
	}

	modes, err := svc.CompletedModes(ctx, "alltag", "kino")
	require.NoError(t, err)
	assert.Equal(t, []practice.Mode{practice.ModeOrder}, modes)
}
