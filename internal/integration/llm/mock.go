package llm

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned replacement for the model connector, used when
// ENABLE_MOCKS is set. It accepts every answer and extracts a full field
// set, so a single valid-looking turn completes the intake.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) ValidateAnswer(ctx context.Context, question, answer string) (bool, error) {
	ctxzap.Info(ctx, "[MOCK] validating answer", zap.String("question", question))
	return true, nil
}

func (m *MockConnector) ComposeClarification(ctx context.Context, question, rejectedAnswer string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] composing clarification")
	return "Could you please share a bit more detail? Your previous answer did not address the question: " + question, nil
}

func (m *MockConnector) ExtractFields(ctx context.Context, answer string) (map[string]string, error) {
	ctxzap.Info(ctx, "[MOCK] extracting fields", zap.Int("answer_length", len(answer)))

	return map[string]string{
		"current_role":        "backend engineer (MOCK)",
		"collaboration_needs": "technical partner (MOCK)",
		"domain":              "healthcare (MOCK)",
		"region":              "North America (MOCK)",
	}, nil
}
