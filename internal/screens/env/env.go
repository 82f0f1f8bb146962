// Package env bundles the services the terminal screens share.
package env

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/progress"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/tutor"
	"github.com/abhisek/lesezeit/internal/vocab"
)

// ErrNoTutor is returned by features that need an LLM provider when none
// is configured.
var ErrNoTutor = errors.New("no LLM provider configured (set LESEZEIT_LLM_PROVIDER and an API key)")

// RecordDuration is how long one spoken answer may be.
const RecordDuration = 8 * time.Second

// Env holds the services of one TUI run. Optional services are nil when
// not configured.
type Env struct {
	Library  *content.Library
	Vocab    *vocab.Store
	Progress *progress.Service
	Practice practice.Store

	Tutor *tutor.Service
	Synth speech.Synthesizer
	Trans speech.Transcriber

	Player   *speech.Player
	Recorder *speech.Recorder

	// TempDir receives recordings and uncached audio clips.
	TempDir string

	// Rand drives the unseeded shuffles. Nil uses the global source.
	Rand *rand.Rand
}

// Workspace is the practice state of one text with its progress recorder.
type Workspace struct {
	Text     *content.Text
	Session  *practice.Session
	Progress *progress.Recorder
	Vocab    []vocab.Entry
}

// Source returns the practice source of the workspace.
func (w *Workspace) Source() practice.Source {
	return practice.Source{Paragraphs: w.Text.Paragraphs, Vocab: vocab.ExerciseEntries(w.Vocab)}
}

// OpenWorkspace loads the saved practice state of a text. A snapshot that
// cannot be restored is reported and replaced by fresh state.
func (e *Env) OpenWorkspace(ctx context.Context, text *content.Text) (*Workspace, error) {
	rec, err := e.Progress.For(ctx, text.TopicID, text.ID)
	if err != nil {
		return nil, err
	}
	entries, err := e.Vocab.List(ctx, text.TopicID, text.ID)
	if err != nil {
		return nil, err
	}
	ws := &Workspace{Text: text, Progress: rec, Vocab: entries}
	sess, err := practice.Load(ctx, e.Practice, text.TopicID, text.ID, ws.Source(), rec, e.Rand)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	ws.Session = sess
	return ws, nil
}

// RefreshVocab reloads the word list of the workspace and reconciles the
// session when it changed.
func (e *Env) RefreshVocab(ctx context.Context, ws *Workspace) error {
	entries, err := e.Vocab.List(ctx, ws.Text.TopicID, ws.Text.ID)
	if err != nil {
		return err
	}
	ws.Vocab = entries
	ws.Session.Reconcile(ws.Source())
	return nil
}

// Save persists the session. Failures are reported on stderr.
func (e *Env) Save(ws *Workspace) {
	if err := ws.Session.Save(context.Background(), e.Practice); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// CanSpeak reports whether text can be played aloud.
func (e *Env) CanSpeak() bool {
	_, disabled := e.Synth.(speech.Disabled)
	return e.Player != nil && e.Synth != nil && !disabled
}

// CanListen reports whether answers can be recorded and transcribed.
func (e *Env) CanListen() bool {
	_, disabled := e.Trans.(speech.Disabled)
	return e.Recorder != nil && e.Trans != nil && !disabled
}

// Speak synthesizes text and plays it. It blocks until playback ends.
func (e *Env) Speak(ctx context.Context, text string) error {
	if !e.CanSpeak() {
		return speech.ErrUnavailable
	}
	file, err := e.audioFile(ctx, text)
	if err != nil {
		return err
	}
	return e.Player.Play(ctx, file)
}

func (e *Env) audioFile(ctx context.Context, text string) (string, error) {
	if cached, ok := e.Synth.(*speech.CachedSynthesizer); ok {
		return cached.File(ctx, text, speech.DefaultLanguage)
	}
	audio, err := e.Synth.Synthesize(ctx, text, speech.DefaultLanguage)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp(e.TempDir, "clip-*.mp3")
	if err != nil {
		return "", fmt.Errorf("write clip: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(audio.Data); err != nil {
		return "", fmt.Errorf("write clip: %w", err)
	}
	return f.Name(), nil
}

// Listen records RecordDuration of speech and returns its transcript.
func (e *Env) Listen(ctx context.Context) (string, error) {
	if !e.CanListen() {
		return "", speech.ErrUnavailable
	}
	file := filepath.Join(e.TempDir, fmt.Sprintf("answer-%d.wav", time.Now().UnixNano()))
	defer os.Remove(file)

	if err := e.Recorder.Record(ctx, RecordDuration, file); err != nil {
		return "", err
	}
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return e.Trans.Transcribe(ctx, f, filepath.Base(file), speech.DefaultLanguage)
}
