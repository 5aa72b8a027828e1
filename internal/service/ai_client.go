package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"bookforge/internal/config"
)

// ErrAIGenerationFailed wraps failures of the text-generation service.
var ErrAIGenerationFailed = errors.New("AI text generation failed")

// AIClient produces structured JSON from a system/user prompt pair.
// Used by the proofreading and scene-prompt stages.
type AIClient interface {
	// CompleteJSON sends the prompts and returns the raw model output, which
	// callers parse into their stage-specific shape.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// ModelName reports the configured model, recorded on corrected content.
	ModelName() string
}

// Compile-time check to ensure openAIClient implements the interface
var _ AIClient = (*openAIClient)(nil)

// openAIClient implements AIClient over any OpenAI-compatible endpoint.
type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates an AIClient from configuration.
func NewOpenAIClient(cfg *config.Config, logger *zap.Logger) AIClient {
	clientConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
	clientConfig.BaseURL = cfg.AIBaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}

	return &openAIClient{
		client: openaigo.NewClientWithConfig(clientConfig),
		model:  cfg.AIModel,
		logger: logger.Named("OpenAIClient"),
	}
}

func (c *openAIClient) ModelName() string {
	return c.model
}

func (c *openAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openaigo.ChatCompletionMessage{
		{
			Role:    openaigo.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
		{
			Role:    openaigo.ChatMessageRoleUser,
			Content: userPrompt,
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	duration := time.Since(start)

	if err != nil {
		aiRequestsTotal.WithLabelValues("text", "error").Inc()
		c.logger.Error("Chat completion request failed",
			zap.String("model", c.model),
			zap.Duration("duration", duration),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		aiRequestsTotal.WithLabelValues("text", "empty").Inc()
		c.logger.Error("Chat completion returned no content", zap.String("model", c.model))
		return "", fmt.Errorf("%w: empty response from model", ErrAIGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues("text", "success").Inc()
	aiRequestDuration.WithLabelValues("text").Observe(duration.Seconds())
	aiTokensUsed.Add(float64(resp.Usage.TotalTokens))

	c.logger.Info("Chat completion succeeded",
		zap.String("model", c.model),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}
