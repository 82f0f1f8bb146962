package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/app"
	"github.com/abhisek/lesezeit/internal/llm"
	"github.com/abhisek/lesezeit/internal/progress"
	"github.com/abhisek/lesezeit/internal/screens/env"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/store"
	"github.com/abhisek/lesezeit/internal/tutor"
	"github.com/abhisek/lesezeit/internal/vocab"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	lib, err := loadLibrary(cmd)
	if err != nil {
		return err
	}

	tmp, err := os.MkdirTemp("", "lesezeit-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	e := &env.Env{
		Library:  lib,
		Vocab:    vocab.NewStore(st.VocabRepo()),
		Progress: progress.NewService(st.ProgressRepo()),
		Practice: st.PracticeRepo(),
		TempDir:  tmp,
	}

	if cfg, ok := llm.Resolve(); ok {
		provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		} else {
			e.Tutor = tutor.NewService(provider, tutor.DefaultConfig())
		}
	}
	if e.Tutor == nil {
		fmt.Fprintln(os.Stderr, "AI features (translation, dictionary, conversation) will be unavailable.")
	}

	e.Synth, e.Trans = speech.New(speechConfig())
	if p, err := speech.FindPlayer(); err == nil {
		e.Player = p
	}
	if r, err := speech.FindRecorder(); err == nil {
		e.Recorder = r
	}

	return app.Run(e)
}

// speechConfig reads the speech settings and caches clips under the user
// cache directory unless LESEZEIT_AUDIO_CACHE names another one.
func speechConfig() speech.Config {
	cfg := speech.ConfigFromEnv()
	if cfg.CacheDir == "" {
		if dir, err := store.DefaultCacheDir(); err == nil {
			cfg.CacheDir = filepath.Join(dir, "audio")
		}
	}
	return cfg
}
