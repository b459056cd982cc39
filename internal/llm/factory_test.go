package llm

import (
	"testing"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantType    any
		wantMissing bool
		wantErr     bool
	}{
		{name: "gemini default provider", cfg: Config{APIKey: "k"}, wantType: &geminiClient{}},
		{name: "gemini missing key", cfg: Config{Provider: "gemini"}, wantMissing: true},
		{name: "openai", cfg: Config{Provider: "OpenAI", APIKey: "k"}, wantType: &openAIClient{}},
		{name: "anthropic missing key", cfg: Config{Provider: "anthropic"}, wantMissing: true},
		{name: "ollama needs no key", cfg: Config{Provider: "ollama"}, wantType: &ollamaClient{}},
		{name: "unknown provider", cfg: Config{Provider: "clippy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			switch {
			case tt.wantMissing:
				require.ErrorIs(t, err, common.ErrMissingConfig)
			case tt.wantErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, common.ErrMissingConfig)
			default:
				require.NoError(t, err)
				assert.IsType(t, tt.wantType, client)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", DefaultModel(""))
	assert.Equal(t, "gemini-2.0-flash", DefaultModel(ProviderGemini))
	assert.Equal(t, "gpt-4o-mini", DefaultModel(ProviderOpenAI))
	assert.Equal(t, "llama3.1:8b", DefaultModel("OLLAMA"))
}

func TestGeminiClientSettings(t *testing.T) {
	client, err := newGeminiClient(t.Context(), Config{APIKey: "k", Model: "gemini-1.5-pro", Temperature: 0.7, MaxTokens: 64})
	require.NoError(t, err)

	gc := client.(*geminiClient)
	assert.Equal(t, "gemini-1.5-pro", gc.model)
	assert.InDelta(t, 0.7, gc.temperature, 0.0001)
	assert.Equal(t, int32(64), gc.maxTokens)
}
