// Package gemini implements the oracle.Generator interface using Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ideiatech/smartleader-api/internal/config"
	"github.com/ideiatech/smartleader-api/internal/oracle"
	"google.golang.org/genai"
)

// Generator implements oracle.Generator backed by the Gemini API.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure Generator implements oracle.Generator.
var _ oracle.Generator = (*Generator)(nil)

// NewGenerator creates a new Gemini-backed Generator with the provided
// dependencies. Returns an error if the configuration is invalid or the
// client cannot be created.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", oracle.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", oracle.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", oracle.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Generate implements oracle.Generator. It sends the prompt to the Gemini
// API and returns the raw text of the first candidate.
//
// There is deliberately no retry here: the engine's policy is that a single
// oracle failure triggers the local fallback immediately, and the caller is
// expected to bound the call with a context deadline.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", oracle.ErrEmptyPrompt
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		slog.String("model", g.model),
		slog.Int("prompt_length", len(prompt)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", oracle.ErrUnavailable)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: blocked by safety filters", oracle.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty content in response", oracle.ErrUnavailable)
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		slog.Int("reply_length", len(text)))

	return text, nil
}
