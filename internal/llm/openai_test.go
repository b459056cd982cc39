package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: Config{APIKey: "test-key"},
		},
		{
			name:    "missing API key",
			config:  Config{APIKey: ""},
			wantErr: true,
		},
		{
			name: "custom model and settings",
			config: Config{
				APIKey:      "test-key",
				Model:       "gpt-4",
				Temperature: 0.5,
				MaxTokens:   200,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newOpenAIClient(tt.config)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrMissingConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		want          string
		statusCode    int
		wantErr       bool
		wantRetryable bool
	}{
		{
			name:       "successful completion",
			statusCode: http.StatusOK,
			body:       `{"choices":[{"index":0,"message":{"role":"assistant","content":"Invoices"}}]}`,
			want:       "Invoices",
		},
		{
			name:          "server error is retryable",
			statusCode:    http.StatusInternalServerError,
			body:          `{"error":"boom"}`,
			wantErr:       true,
			wantRetryable: true,
		},
		{
			name:          "rate limited is retryable",
			statusCode:    http.StatusTooManyRequests,
			body:          `{"error":"slow down"}`,
			wantErr:       true,
			wantRetryable: true,
		},
		{
			name:       "bad request is final",
			statusCode: http.StatusBadRequest,
			body:       `{"error":"bad"}`,
			wantErr:    true,
		},
		{
			name:       "no choices in response",
			statusCode: http.StatusOK,
			body:       `{"choices":[]}`,
			wantErr:    true,
		},
		{
			name:       "invalid JSON",
			statusCode: http.StatusOK,
			body:       `not json`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var req map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "gpt-4o-mini", req["model"])

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
			require.NoError(t, err)

			got, err := client.Complete(context.Background(), "classify this")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantRetryable, common.IsRetryable(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
