package intake

import "context"

// LLMConnector is the model-backed capability set the intake flow needs.
// Implementations must not retry internally; failures propagate to the
// caller untouched.
type LLMConnector interface {
	ValidateAnswer(ctx context.Context, question, answer string) (bool, error)
	ComposeClarification(ctx context.Context, question, rejectedAnswer string) (string, error)
	ExtractFields(ctx context.Context, answer string) (map[string]string, error)
}
