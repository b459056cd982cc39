package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/tag"
	"github.com/sony/gobreaker/v2"
)

// DefaultMaxInputChars bounds how much document text is sent per request.
const DefaultMaxInputChars = 8000

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	MaxRetries     int
	RetryDelay     time.Duration
	CacheTTL       time.Duration
	Timeout        time.Duration
	BreakerTimeout time.Duration
	RateLimit      int
	MaxInputChars  int
	MaxTokens      int
	Temperature    float64
	BreakerTrips   uint32
}

func (c Config) modelOrDefault(provider string) string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(provider)
}

func (c Config) temperatureOrDefault() float64 {
	if c.Temperature == 0 {
		return 0.2
	}
	return c.Temperature
}

func (c Config) maxTokensOrDefault() int {
	if c.MaxTokens == 0 {
		return 20
	}
	return c.MaxTokens
}

// Classifier derives a folder tag from document text using an LLM.
type Classifier struct {
	client      Client
	clientErr   error
	cache       *tagCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	breaker     *gobreaker.CircuitBreaker[string]
	retryOpts   common.RetryOptions
	maxChars    int
}

// NewClassifier creates a new LLM-based classifier. A missing credential is
// not an error here: every Classify call reports common.ErrMissingConfig
// until one is configured.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil && !errors.Is(err, common.ErrMissingConfig) {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	c := NewClassifierWithClient(client, cfg, logger)
	c.clientErr = err
	return c, nil
}

// NewClassifierWithClient wraps an existing client.
func NewClassifierWithClient(client Client, cfg Config, logger *slog.Logger) *Classifier {
	logger = common.LoggerOrDefault(logger)

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	maxChars := cfg.MaxInputChars
	if maxChars <= 0 {
		maxChars = DefaultMaxInputChars
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = ProviderGemini
	}

	return &Classifier{
		client:      client,
		cache:       newTagCache(cfg.CacheTTL),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
		breaker:     newBreaker(provider, cfg.BreakerTrips, cfg.BreakerTimeout, logger),
		maxChars:    maxChars,
	}
}

// Classify returns a sanitized tag for text. Only the first line of the
// model's reply is used; an empty reply becomes tag.Fallback.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	if c.clientErr != nil {
		return "", c.clientErr
	}
	if c.client == nil {
		return "", fmt.Errorf("%w: no LLM client configured", common.ErrMissingConfig)
	}

	input := truncateText(text, c.maxChars)
	key := cacheKey(input)
	if cached, ok := c.cache.get(key); ok {
		c.logger.Debug("cache hit for document text", "tag", cached)
		return cached, nil
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrClassificationFailed, err)
	}

	prompt := buildPrompt(input)
	response, err := c.breaker.Execute(func() (string, error) {
		var reply string
		retryErr := common.WithRetry(ctx, func() error {
			r, callErr := c.client.Complete(ctx, prompt)
			if callErr != nil {
				return callErr
			}
			reply = r
			return nil
		}, c.retryOpts)
		return reply, retryErr
	})
	if err != nil {
		if isCircuitOpen(err) {
			c.logger.Debug("classifier circuit open, failing fast")
		}
		return "", fmt.Errorf("%w: %w", common.ErrClassificationFailed, err)
	}

	result := tag.FromResponse(response)
	c.cache.set(key, result)

	c.logger.Info("document classified", "tag", result, "chars", len([]rune(input)))

	return result, nil
}

// truncateText keeps the first limit runes of text.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// buildPrompt creates the prompt for document tagging.
func buildPrompt(text string) string {
	return fmt.Sprintf(`Read the document excerpt below and choose a folder tag for it.

GUIDELINES:
- Reply with ONE short tag of one to three words, for example: Invoices, Medical, Projects, Recipes, Tax
- Name what the document IS, not what someone might do with it
- Do not add punctuation, quotes, explanations or a second line

Document:
%s`, text)
}
