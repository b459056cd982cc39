package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/llm"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, names := range providerKeyEnv {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELF_TEST_DIR", "/srv/docs")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/Inbox", want: filepath.Join(home, "Inbox")},
		{in: "$SHELF_TEST_DIR/scans", want: "/srv/docs/scans"},
		{in: "/abs/path", want: "/abs/path"},
		{in: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/conf")
	assert.Equal(t, filepath.Join("/data", "shelf", "shelf.db"), DefaultDatabasePath())
	assert.Equal(t, filepath.Join("/conf", "shelf"), ConfigDir())

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, filepath.Join(home, ".local", "share", "shelf", "shelf.db"), DefaultDatabasePath())
	assert.Equal(t, filepath.Join(home, ".config", "shelf"), ConfigDir())
}

func TestSetDefaults(t *testing.T) {
	v := newViper()

	assert.Equal(t, "gemini", v.GetString(KeyLLMProvider))
	assert.Equal(t, 10, v.GetInt(KeyReportMaxErrs))
	assert.True(t, v.GetBool(KeyJournalEnabled))
	assert.Equal(t, 15*time.Minute, v.GetDuration(KeyLLMCacheTTL))
	assert.Equal(t, "console", v.GetString(KeyLogFormat))
}

func TestLoadLLMConfig(t *testing.T) {
	clearKeyEnv(t)
	v := newViper()
	v.Set(KeyLLMProvider, "OpenAI")
	v.Set(KeyLLMModel, "gpt-4o")
	v.Set(KeyLLMRetryDelay, "250ms")

	cfg, err := LoadLLMConfig(v)
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadLLMConfig_KeyPrecedence(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GOOGLE_GENAI_API_KEY", "from-genai-env")

	v := newViper()
	cfg, err := LoadLLMConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-genai-env", cfg.APIKey)

	t.Setenv("GOOGLE_API_KEY", "from-google-env")
	cfg, err = LoadLLMConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-google-env", cfg.APIKey)

	v.Set(KeyLLMAPIKey, "from-config")
	cfg, err = LoadLLMConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-config", cfg.APIKey)
}

func TestLoadLLMConfig_Invalid(t *testing.T) {
	clearKeyEnv(t)

	v := newViper()
	v.Set(KeyLLMProvider, "watson")
	_, err := LoadLLMConfig(v)
	require.ErrorIs(t, err, common.ErrInvalidConfig)

	v = newViper()
	v.Set(KeyLLMTemperature, 3.5)
	_, err = LoadLLMConfig(v)
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}
