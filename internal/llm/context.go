package llm

import "context"

type purposeKey struct{}

// Purposes used as event labels.
const (
	PurposeTranslate = "translate"
	PurposeDefine    = "define"
	PurposeDialogue  = "dialogue"
	PurposeEvaluate  = "evaluate"
)

// WithPurpose labels calls made with ctx for the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
