package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/prepsphere/backend/internal/pkg/logger"
)

// DefaultModel is the model used for interview feedback generation.
const DefaultModel = "google/gemini-2.0-flash-001"

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("ai client not configured")

// Config holds settings for the OpenRouter-compatible completion backend.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client generates text completions. The interview feedback service depends
// on this interface so tests can substitute a canned implementation.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenRouterClient talks to OpenRouter's OpenAI-compatible chat completions API.
type OpenRouterClient struct {
	llm   llms.Model
	model string
}

// NewOpenRouterClient creates a client against the configured base URL.
func NewOpenRouterClient(cfg Config) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	logger.Info().Str("model", model).Msg("AI completion client initialized")

	return &OpenRouterClient{llm: llm, model: model}, nil
}

// Complete sends a single-prompt completion request and returns the raw text.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	return resp, nil
}
