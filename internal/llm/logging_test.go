package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lesezeit/internal/store"
)

type memEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (m *memEvents) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, data)
	return nil
}

func (m *memEvents) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}

func (m *memEvents) GetLLMEvent(context.Context, int) (*store.LLMEventRecord, error) {
	return nil, nil
}

func (m *memEvents) LLMUsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}

func (m *memEvents) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &memEvents{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"translation":"the market"}`),
		Usage:   Usage{InputTokens: 20, OutputTokens: 6},
	})
	p := WithLogging(mock, ProviderAnthropic, repo)

	ctx := WithPurpose(context.Background(), PurposeTranslate)
	_, err := p.Generate(ctx, Ask("Translate.", "der Markt", translationSchema(), 100))
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, ProviderAnthropic, ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, PurposeTranslate, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 20, ev.InputTokens)
	assert.Equal(t, 6, ev.OutputTokens)
	assert.Equal(t, `{"translation":"the market"}`, ev.ResponseBody)
	assert.Contains(t, ev.RequestBody, "[system]\nTranslate.")
	assert.Contains(t, ev.RequestBody, "[user]\nder Markt")
	assert.Contains(t, ev.RequestBody, "[schema: test-translation]")
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &memEvents{}
	p := WithLogging(NewMockProvider(MockResponse{Err: errors.New("boom")}), ProviderOpenAI, repo)

	_, err := p.Generate(context.Background(), Ask("", "x", nil, 10))
	require.Error(t, err)
	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Equal(t, "boom", repo.events[0].ErrorMessage)
	assert.Equal(t, "unknown", repo.events[0].Purpose)
}

func TestLogging_RepoErrorDoesNotFailCall(t *testing.T) {
	repo := &memEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), ProviderMock, repo)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestRenderRequest(t *testing.T) {
	out := renderRequest(Request{Messages: []Message{{Role: RoleUser, Content: "a"}, {Role: RoleAssistant, Content: "b"}}})
	assert.Equal(t, "[user]\na\n\n[assistant]\nb\n\n", out)
	assert.False(t, strings.Contains(out, "[system]"))
}
