package speech

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Synthesizer and Transcriber on the OpenAI audio
// API.
type OpenAIClient struct {
	client   *openai.Client
	voice    openai.SpeechVoice
	ttsModel openai.SpeechModel
	asrModel string
}

// NewOpenAIClient creates a client for cfg.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	d := DefaultConfig()
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(conf),
		voice:    openai.SpeechVoice(cmp.Or(cfg.Voice, d.Voice)),
		ttsModel: openai.SpeechModel(cmp.Or(cfg.TTSModel, d.TTSModel)),
		asrModel: cmp.Or(cfg.ASRModel, d.ASRModel),
	}
}

// Synthesize returns an MP3 clip. The voice is multilingual and follows the
// language of the text, so lang only feeds the cache key.
func (c *OpenAIClient) Synthesize(ctx context.Context, text, lang string) (Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Audio{}, errors.New("synthesize: empty text")
	}
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          c.ttsModel,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return Audio{}, mapError("synthesize", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return Audio{}, fmt.Errorf("synthesize: read audio: %w", err)
	}
	return Audio{Data: data, ContentType: "audio/mpeg"}, nil
}

// Transcribe sends a recording to the speech recognition model.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename, lang string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.asrModel,
		Reader:   audio,
		FilePath: filename,
		Language: cmp.Or(lang, DefaultLanguage),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", mapError("transcribe", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// mapError marks failures the learner cannot fix by changing the request
// (network, authentication, rate limits, server errors) as ErrUnavailable.
func mapError(op string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == 0 || status == http.StatusUnauthorized || status == http.StatusTooManyRequests || status >= 500 {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
