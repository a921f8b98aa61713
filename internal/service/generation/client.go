// Package generation invokes the language model and repairs its structured
// output into the fixed idea schemas.
package generation

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/trendulum/trendulum-api-go/internal/config"
	apperrors "github.com/trendulum/trendulum-api-go/pkg/errors"
	"go.uber.org/zap"
)

const systemPreamble = "You are a world-class creative strategist and viral marketing expert for content creators."

// ideaTemperature favors creative variety while keeping output parseable.
const ideaTemperature = 0.7

// Completer produces a JSON-structured completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (json.RawMessage, error)
}

type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient builds the generation client. A missing API key is allowed: the
// client stays unconfigured and every Complete call short-circuits to an
// error without touching the network.
func NewClient(cfg config.OpenAIConfig, logger *zap.Logger) *Client {
	c := &Client{
		model:  cfg.Model,
		logger: logger,
	}
	if cfg.APIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
		c.client = &client
	}
	return c
}

func (c *Client) Configured() bool {
	return c.client != nil
}

// Complete issues exactly one chat completion request in JSON mode and
// returns the parsed payload. Every failure mode, transport error, model
// error, or non-JSON payload, comes back as an error value; nothing raises
// past this boundary.
func (c *Client) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, apperrors.NewGenerationError("OpenAI API key not configured")
	}

	c.logger.Debug("Sending generation prompt",
		zap.String("model", c.model),
		zap.Int("prompt_chars", len(prompt)),
	)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPreamble),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(ideaTemperature),
	})
	if err != nil {
		c.logger.Error("Generation request failed", zap.Error(err))
		return nil, apperrors.NewGenerationError("generation request failed").WithCause(err)
	}

	if len(resp.Choices) == 0 {
		return nil, apperrors.NewGenerationError("no choices in model response")
	}

	payload := bytes.TrimSpace([]byte(resp.Choices[0].Message.Content))
	if !json.Valid(payload) {
		c.logger.Warn("Model returned non-JSON payload", zap.Int("length", len(payload)))
		return nil, apperrors.NewGenerationError("model returned a non-JSON payload")
	}

	c.logger.Debug("Generation response received",
		zap.Int("length", len(payload)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return json.RawMessage(payload), nil
}
