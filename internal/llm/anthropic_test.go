package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 12},
	}
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	var body map[string]any
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"translation":"the weekly market"}`, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), Ask("Translate.", "der Wochenmarkt", translationSchema(), 256))
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5", body["model"])
	assert.Contains(t, body, "output_config")
	assert.JSONEq(t, `{"translation":"the weekly market"}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 12, TotalTokens: 62}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
}

func TestAnthropicProvider_PlainTextMaxTokens(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("Der Zug fährt um", "max_tokens"))
	})
	resp, err := p.Generate(context.Background(), Ask("", "Beende den Satz.", nil, 5))
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
		})
	})
	_, err := p.Generate(context.Background(), Ask("", "x", nil, 10))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_NoTextBlock(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		msg := anthropicMessage("", "end_turn")
		msg["content"] = []map[string]any{}
		json.NewEncoder(w).Encode(msg)
	})
	_, err := p.Generate(context.Background(), Ask("", "x", nil, 10))
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestAnthropicModelAliases(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-5", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}
