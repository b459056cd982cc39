package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/llm"
	"github.com/spf13/viper"
)

// providerKeyEnv lists, per provider, the conventional environment
// variables consulted when llm.api_key is unset.
var providerKeyEnv = map[string][]string{
	llm.ProviderGemini:    {"GOOGLE_API_KEY", "GOOGLE_GENAI_API_KEY", "GEMINI_API_KEY"},
	llm.ProviderOpenAI:    {"OPENAI_API_KEY"},
	llm.ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	llm.ProviderOllama:    nil,
}

// LoadLLMConfig builds the classifier configuration. It follows this
// precedence:
// 1. Viper configuration (from config file or SHELF_ env vars)
// 2. The provider's conventional environment variable for the key
// 3. Default values
//
// A missing API key is not an error here; the classifier reports it when
// it is first used.
func LoadLLMConfig(v *viper.Viper) (llm.Config, error) {
	provider := strings.ToLower(strings.TrimSpace(v.GetString(KeyLLMProvider)))
	if provider == "" {
		provider = llm.ProviderGemini
	}
	envKeys, ok := providerKeyEnv[provider]
	if !ok {
		return llm.Config{}, fmt.Errorf("%w: unknown llm.provider %q", common.ErrInvalidConfig, provider)
	}

	cfg := llm.Config{
		Provider:    provider,
		APIKey:      v.GetString(KeyLLMAPIKey),
		Model:       v.GetString(KeyLLMModel),
		BaseURL:     v.GetString(KeyLLMBaseURL),
		Temperature: v.GetFloat64(KeyLLMTemperature),
		MaxTokens:   v.GetInt(KeyLLMMaxTokens),
		MaxRetries:  v.GetInt(KeyLLMMaxRetries),
		RetryDelay:  v.GetDuration(KeyLLMRetryDelay),
		CacheTTL:    v.GetDuration(KeyLLMCacheTTL),
		RateLimit:   v.GetInt(KeyLLMRateLimit),
		Timeout:     v.GetDuration(KeyLLMTimeout),
	}

	if cfg.APIKey == "" {
		for _, name := range envKeys {
			if key := os.Getenv(name); key != "" {
				cfg.APIKey = key
				break
			}
		}
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return llm.Config{}, fmt.Errorf("%w: llm.temperature must be between 0 and 2, got %v", common.ErrInvalidConfig, cfg.Temperature)
	}
	if cfg.MaxRetries < 0 {
		return llm.Config{}, fmt.Errorf("%w: llm.max_retries must not be negative", common.ErrInvalidConfig)
	}

	return cfg, nil
}
