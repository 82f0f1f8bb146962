package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CachedSynthesizer keeps synthesized clips on disk so each sentence is
// generated once. Failures are not cached.
type CachedSynthesizer struct {
	inner Synthesizer
	dir   string
	voice string

	mu sync.Mutex
}

// NewCachedSynthesizer wraps inner with a cache in dir. voice is part of
// the cache key so changing it produces fresh clips.
func NewCachedSynthesizer(inner Synthesizer, dir, voice string) *CachedSynthesizer {
	return &CachedSynthesizer{inner: inner, dir: dir, voice: voice}
}

// Key returns the cache file stem for text.
func (c *CachedSynthesizer) Key(text, lang string) string {
	sum := sha256.Sum256([]byte(lang + ":" + c.voice + ":" + strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:16])
}

// Path returns the file a clip for text is cached in.
func (c *CachedSynthesizer) Path(text, lang string) string {
	return filepath.Join(c.dir, c.Key(text, lang)+".mp3")
}

func (c *CachedSynthesizer) Synthesize(ctx context.Context, text, lang string) (Audio, error) {
	lang = langOrDefault(lang)
	path := c.Path(text, lang)
	if data, err := os.ReadFile(path); err == nil {
		return Audio{Data: data, ContentType: "audio/mpeg"}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have filled the cache while we waited.
	if data, err := os.ReadFile(path); err == nil {
		return Audio{Data: data, ContentType: "audio/mpeg"}, nil
	}

	audio, err := c.inner.Synthesize(ctx, text, lang)
	if err != nil {
		return Audio{}, err
	}
	if err := writeFileAtomic(path, audio.Data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cache audio: %v\n", err)
	}
	return audio, nil
}

// File returns the path of a cached clip for text, synthesizing it first
// when needed. Players need a file rather than bytes.
func (c *CachedSynthesizer) File(ctx context.Context, text, lang string) (string, error) {
	lang = langOrDefault(lang)
	if _, err := c.Synthesize(ctx, text, lang); err != nil {
		return "", err
	}
	path := c.Path(text, lang)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("cached clip missing: %w", err)
	}
	return path, nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".clip-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func langOrDefault(lang string) string {
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
