package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/shelf/internal/common"
	"google.golang.org/genai"
)

// geminiClient implements the Client interface with Google's GenAI SDK.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required (set GOOGLE_API_KEY)", common.ErrMissingConfig)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &geminiClient{
		client:      client,
		model:       cfg.modelOrDefault(ProviderGemini),
		temperature: float32(cfg.temperatureOrDefault()),
		maxTokens:   int32(cfg.maxTokensOrDefault()),
	}, nil
}

// Complete asks Gemini to generate a reply for prompt.
func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		return "", geminiError(err)
	}
	return resp.Text(), nil
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("GenAI request failed: %w", err)
	}
	wrapped := fmt.Errorf("GenAI API error (status %d): %w", apiErr.Code, err)
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrRateLimit, wrapped), Retryable: true}
	case apiErr.Code >= http.StatusInternalServerError:
		return &common.RetryableError{Err: wrapped, Retryable: true}
	default:
		return wrapped
	}
}
