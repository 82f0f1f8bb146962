package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"})
	assert.Error(t, err)

	// Names that are OpenAI aliases are not rewritten.
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "gpt"})
	require.NoError(t, err)
	assert.Equal(t, "gpt", p.ModelID())
}

func TestOpenRouterProvider_SendsModelVerbatim(t *testing.T) {
	var model string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-or", r.Header.Get("Authorization"))
		var body struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		model = body.Model
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("Hallo!", "stop"))
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or",
		Model:   "meta-llama/llama-3.1-8b-instruct",
		BaseURL: srv.URL + "/api/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Ask("", "Sag hallo.", nil, 16))
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", model)

	text, err := Decode[string](resp)
	require.NoError(t, err)
	assert.Equal(t, "Hallo!", text)
}
