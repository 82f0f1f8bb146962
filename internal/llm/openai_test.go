package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 8, "total_tokens": 48},
	}
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	var got struct {
		Model    string                         `json:"model"`
		Messages []openai.ChatCompletionMessage `json:"messages"`
		Format   struct {
			Type       string         `json:"type"`
			JSONSchema map[string]any `json:"json_schema"`
		} `json:"response_format"`
	}
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"translation":"the train station"}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), Ask("Translate German to English.", "der Bahnhof", translationSchema(), 128))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "der Bahnhof", got.Messages[1].Content)
	assert.Equal(t, string(openai.ChatCompletionResponseFormatTypeJSONSchema), got.Format.Type)
	assert.Equal(t, "test-translation", got.Format.JSONSchema["name"])
	assert.Equal(t, true, got.Format.JSONSchema["strict"])

	assert.JSONEq(t, `{"translation":"the train station"}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 8, TotalTokens: 48}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"transla`, "length"))
	})
	_, err := p.Generate(context.Background(), Ask("", "x", translationSchema(), 4))
	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
		{http.StatusBadRequest, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "nope", "type": "x"}})
			})
			_, err := p.Generate(context.Background(), Ask("", "x", nil, 10))
			if !tt.check(err) {
				t.Fatalf("unexpected error type %T (%v)", err, err)
			}
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "choices": []any{}})
	})
	_, err := p.Generate(context.Background(), Ask("", "x", nil, 10))
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	p, err = NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4.1-nano"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-nano", p.ModelID())
}
