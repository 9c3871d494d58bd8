package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/chhatrapati/linkup/internal/config"
	"github.com/chhatrapati/linkup/internal/entity"
	"github.com/chhatrapati/linkup/internal/integration/common"
	pkghttp "github.com/chhatrapati/linkup/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to the external chat-completion API. Every higher-level
// operation goes through the single Complete call; there is no retrying and
// no caching here. Failures reaching or understanding the API wrap
// entity.ErrModelGateway, while a structurally unusable extraction reply
// wraps entity.ErrExtraction.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	fields    []string
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	fields []string,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		fields:    fields,
		logger:    logger,
	}
}

// Complete sends one system+user message pair to the model and returns the
// raw text of the first choice.
func (c *Connector) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	req := &entity.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleSystem, Content: systemPrompt},
			{Role: entity.ChatRoleUser, Content: userContent},
		},
	}

	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: completion request: %v", entity.ErrModelGateway, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response contains no choices", entity.ErrModelGateway)
	}

	return resp.Choices[0].Message.Content, nil
}

// ValidateAnswer asks the model whether the answer is relevant to the
// question. The verdict is true only for an exact trimmed, case-insensitive
// "yes"; any other reply counts as invalid. The strictness is deliberate:
// the model's verdict is trusted completely and nothing is second-guessed
// locally.
func (c *Connector) ValidateAnswer(ctx context.Context, question, answer string) (bool, error) {
	ctxzap.Info(ctx, "validating answer via model")

	reply, err := c.Complete(ctx, validationSystemPrompt, validationUserPrompt(question, answer))
	if err != nil {
		return false, fmt.Errorf("validate answer: %w", err)
	}

	verdict := strings.EqualFold(strings.TrimSpace(reply), "yes")

	ctxzap.Info(ctx, "answer validated", zap.Bool("accepted", verdict))
	return verdict, nil
}

// ComposeClarification drafts a polite re-ask for a rejected answer. The
// model's text is returned verbatim.
func (c *Connector) ComposeClarification(ctx context.Context, question, rejectedAnswer string) (string, error) {
	ctxzap.Info(ctx, "composing clarification via model")

	reply, err := c.Complete(ctx, clarificationSystemPrompt, clarificationUserPrompt(question, rejectedAnswer))
	if err != nil {
		return "", fmt.Errorf("compose clarification: %w", err)
	}

	return strings.TrimSpace(reply), nil
}

// ExtractFields asks the model to pull the configured fields out of a
// free-text answer and parses the JSON-object reply. Non-string and empty
// values are dropped; a reply that is not a JSON object is a hard
// entity.ErrExtraction failure, not an empty result.
func (c *Connector) ExtractFields(ctx context.Context, answer string) (map[string]string, error) {
	ctxzap.Info(ctx, "extracting fields via model")

	reply, err := c.Complete(ctx, extractionSystemPrompt(c.fields), extractionUserPrompt(answer))
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	extracted, err := parseExtraction(reply)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "fields extracted", zap.Int("count", len(extracted)))
	return extracted, nil
}

// parseExtraction converts the model reply into a field map. Only string
// values survive; empty strings and JSON nulls are dropped.
func parseExtraction(reply string) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrExtraction, err)
	}

	extracted := make(map[string]string, len(raw))
	for key, value := range raw {
		str, ok := value.(string)
		if !ok {
			continue
		}
		if strings.TrimSpace(str) == "" {
			continue
		}
		extracted[key] = str
	}

	return extracted, nil
}
