package store

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicate is returned when a row violates a uniqueness rule.
var ErrDuplicate = errors.New("duplicate entry")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls sharing one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// PracticeRepo stores one practice snapshot blob per text.
type PracticeRepo interface {
	// Load returns the saved blob, or nil if there is none.
	Load(ctx context.Context, topicID, textID string) ([]byte, error)
	Save(ctx context.Context, topicID, textID string, blob []byte) error
	Delete(ctx context.Context, topicID, textID string) error
}

// ProgressRecord is one completed mode of one text.
type ProgressRecord struct {
	TopicID     string
	TextID      string
	ModeKey     string
	CompletedAt time.Time
}

// ProgressRepo stores which modes of which texts are complete.
type ProgressRepo interface {
	// MarkComplete records key as complete. Marking twice keeps the first
	// completion time.
	MarkComplete(ctx context.Context, topicID, textID, key string) error
	Unmark(ctx context.Context, topicID, textID, key string) error
	Completed(ctx context.Context, topicID, textID string) ([]string, error)
	All(ctx context.Context) ([]ProgressRecord, error)
	DeleteText(ctx context.Context, topicID, textID string) error
}

// VocabRecord is a saved vocabulary entry.
type VocabRecord struct {
	ID         string
	TopicID    string
	TextID     string
	SourceTerm string
	BaseForm   string
	TargetTerm string
	Context    string
	CreatedAt  time.Time
}

// VocabRepo stores vocabulary entries.
type VocabRepo interface {
	// Insert adds rec. It returns ErrDuplicate when the text already has
	// an entry with the same source term, ignoring case.
	Insert(ctx context.Context, rec VocabRecord) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*VocabRecord, error)
	// List returns the entries of one text in insertion order. Empty
	// topicID and textID list every entry.
	List(ctx context.Context, topicID, textID string) ([]VocabRecord, error)
	DeleteText(ctx context.Context, topicID, textID string) error
}
