package config

import (
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyFolder         = "folder"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLLMProvider    = "llm.provider"
	KeyLLMModel       = "llm.model"
	KeyLLMAPIKey      = "llm.api_key"
	KeyLLMBaseURL     = "llm.base_url"
	KeyLLMTemperature = "llm.temperature"
	KeyLLMMaxTokens   = "llm.max_tokens"
	KeyLLMMaxRetries  = "llm.max_retries"
	KeyLLMRetryDelay  = "llm.retry_delay"
	KeyLLMCacheTTL    = "llm.cache_ttl"
	KeyLLMRateLimit   = "llm.rate_limit"
	KeyLLMTimeout     = "llm.timeout"
	KeyDatabasePath   = "database.path"
	KeyJournalEnabled = "journal.enabled"
	KeyReportMaxErrs  = "report.max_errors"
	KeyTUITheme       = "tui.theme"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetDefault(KeyLLMProvider, "gemini")
	v.SetDefault(KeyLLMTemperature, 0.2)
	v.SetDefault(KeyLLMMaxTokens, 20)
	v.SetDefault(KeyLLMMaxRetries, 3)
	v.SetDefault(KeyLLMRetryDelay, time.Second)
	v.SetDefault(KeyLLMCacheTTL, 15*time.Minute)
	v.SetDefault(KeyLLMRateLimit, 60)
	v.SetDefault(KeyLLMTimeout, 30*time.Second)

	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyJournalEnabled, true)
	v.SetDefault(KeyReportMaxErrs, 10)
	v.SetDefault(KeyTUITheme, "default")
}
