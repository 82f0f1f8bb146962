package speech

import "os"

// Config configures the OpenAI audio backend.
type Config struct {
	APIKey   string
	BaseURL  string
	Voice    string
	TTSModel string
	ASRModel string

	// CacheDir holds synthesized clips. Empty disables caching.
	CacheDir string
}

// DefaultConfig returns the defaults without credentials.
func DefaultConfig() Config {
	return Config{
		Voice:    "nova",
		TTSModel: "tts-1",
		ASRModel: "whisper-1",
	}
}

// ConfigFromEnv reads LESEZEIT_SPEECH_API_KEY (falling back to
// OPENAI_API_KEY), LESEZEIT_SPEECH_BASE_URL, LESEZEIT_TTS_VOICE and
// LESEZEIT_AUDIO_CACHE.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv("LESEZEIT_SPEECH_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.BaseURL = os.Getenv("LESEZEIT_SPEECH_BASE_URL")
	if v := os.Getenv("LESEZEIT_TTS_VOICE"); v != "" {
		cfg.Voice = v
	}
	cfg.CacheDir = os.Getenv("LESEZEIT_AUDIO_CACHE")
	return cfg
}
