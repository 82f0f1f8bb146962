// Package speech turns text into audio and audio into text.
package speech

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable is returned when no speech backend is configured.
var ErrUnavailable = errors.New("speech service unavailable")

// DefaultLanguage is the language texts are read in.
const DefaultLanguage = "de"

// Audio is a synthesized clip.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer produces speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) (Audio, error)
}

// Transcriber turns recorded speech into text. filename carries the audio
// format by its extension.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, lang string) (string, error)
}

// Disabled implements Synthesizer and Transcriber by failing with
// ErrUnavailable.
type Disabled struct{}

func (Disabled) Synthesize(context.Context, string, string) (Audio, error) {
	return Audio{}, ErrUnavailable
}

func (Disabled) Transcribe(context.Context, io.Reader, string, string) (string, error) {
	return "", ErrUnavailable
}

// New returns the backends for cfg. Without an API key both are Disabled.
// With a cache directory the synthesizer stores clips on disk.
func New(cfg Config) (Synthesizer, Transcriber) {
	if cfg.APIKey == "" {
		return Disabled{}, Disabled{}
	}
	client := NewOpenAIClient(cfg)
	if cfg.CacheDir == "" {
		return client, client
	}
	return NewCachedSynthesizer(client, cfg.CacheDir, cfg.Voice), client
}
