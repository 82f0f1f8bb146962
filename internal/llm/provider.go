package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes one model call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks the provider for JSON output conforming to it. Without a
	// schema the response is plain text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Ask builds a single-turn request.
func Ask(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the response must satisfy. Name is used as the
// tool or schema name by providers and must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the normalized reason generation stopped.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token consumption of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Decode unmarshals the response content into a value of type T.
func Decode[T any](resp *Response) (T, error) {
	var v T
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return v, &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return v, nil
}

// finish turns raw provider output into a Response. Truncated structured
// output is reported as ErrMaxTokensExceeded and everything else is
// validated against the request schema.
func finish(req Request, content json.RawMessage, usage Usage, model string, stop StopReason) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	} else {
		// Plain text is carried as a JSON string.
		quoted, err := json.Marshal(string(content))
		if err != nil {
			return nil, fmt.Errorf("encode text response: %w", err)
		}
		content = quoted
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a short alias to a provider model id. Unknown names pass
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
