package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/tag"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records prompts and replays scripted replies.
type fakeClient struct {
	errs    []error
	prompts []string
	reply   string
	mu      sync.Mutex
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.reply, nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func testConfig() Config {
	return Config{MaxRetries: 3, RetryDelay: time.Millisecond, RateLimit: 6000}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "plain tag", reply: "Invoices", want: "Invoices"},
		{name: "first line only", reply: "Medical\nBecause it mentions a doctor.", want: "Medical"},
		{name: "surrounding decoration", reply: "**\"Tax\".**", want: "Tax"},
		{name: "forbidden characters removed", reply: "Work/Projects", want: "WorkProjects"},
		{name: "empty reply falls back", reply: "   \n", want: tag.Fallback},
		{name: "long reply capped", reply: strings.Repeat("x", 100), want: strings.Repeat("x", tag.MaxLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: tt.reply}
			c := NewClassifierWithClient(client, testConfig(), nil)

			got, err := c.Classify(context.Background(), "document body "+tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), tag.MaxLength)
		})
	}
}

func TestClassifier_TruncatesInput(t *testing.T) {
	client := &fakeClient{reply: "Books"}
	c := NewClassifierWithClient(client, testConfig(), nil)

	text := strings.Repeat("a", DefaultMaxInputChars) + strings.Repeat("b", 500)
	_, err := c.Classify(context.Background(), text)
	require.NoError(t, err)

	require.Equal(t, 1, client.calls())
	prompt := client.prompts[0]
	_, document, found := strings.Cut(prompt, "Document:\n")
	require.True(t, found)
	assert.Contains(t, document, strings.Repeat("a", DefaultMaxInputChars))
	assert.NotContains(t, document, "b")
}

func TestClassifier_TruncatesByRune(t *testing.T) {
	assert.Equal(t, "héé", truncateText("héééé", 3))
	assert.Equal(t, "short", truncateText("short", 10))
}

func TestClassifier_CachesIdenticalText(t *testing.T) {
	client := &fakeClient{reply: "Recipes"}
	c := NewClassifierWithClient(client, testConfig(), nil)

	for range 3 {
		got, err := c.Classify(context.Background(), "pancakes")
		require.NoError(t, err)
		assert.Equal(t, "Recipes", got)
	}
	assert.Equal(t, 1, client.calls())
}

func TestClassifier_RetriesTransientErrors(t *testing.T) {
	client := &fakeClient{
		reply: "Legal",
		errs:  []error{&common.RetryableError{Err: errors.New("503"), Retryable: true}},
	}
	c := NewClassifierWithClient(client, testConfig(), nil)

	got, err := c.Classify(context.Background(), "contract")
	require.NoError(t, err)
	assert.Equal(t, "Legal", got)
	assert.Equal(t, 2, client.calls())
}

func TestClassifier_ClientErrorFails(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("bad request")}}
	c := NewClassifierWithClient(client, testConfig(), nil)

	_, err := c.Classify(context.Background(), "anything")
	require.ErrorIs(t, err, common.ErrClassificationFailed)
	assert.Equal(t, 1, client.calls(), "non-retryable errors are not retried")
}

func TestClassifier_BreakerOpens(t *testing.T) {
	failure := errors.New("provider down")
	client := &fakeClient{errs: []error{failure, failure, failure}}
	cfg := testConfig()
	cfg.BreakerTrips = 2
	cfg.BreakerTimeout = time.Hour
	c := NewClassifierWithClient(client, cfg, nil)

	for i := range 2 {
		_, err := c.Classify(context.Background(), "doc "+string(rune('a'+i)))
		require.ErrorIs(t, err, common.ErrClassificationFailed)
	}
	require.Equal(t, 2, client.calls())

	_, err := c.Classify(context.Background(), "doc c")
	require.ErrorIs(t, err, common.ErrClassificationFailed)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, client.calls(), "open breaker must not reach the provider")
}

func TestClassifier_MissingCredential(t *testing.T) {
	c, err := NewClassifier(Config{Provider: ProviderOpenAI}, nil)
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "text")
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestNewClassifier_UnknownProvider(t *testing.T) {
	_, err := NewClassifier(Config{Provider: "nope", APIKey: "k"}, nil)
	require.Error(t, err)
}

func TestClassifier_CanceledContext(t *testing.T) {
	client := &fakeClient{reply: "Never"}
	c := NewClassifierWithClient(client, Config{RateLimit: 1}, nil)

	// Drain the single burst token so the next call has to wait.
	require.NoError(t, c.rateLimiter.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, "text")
	require.ErrorIs(t, err, common.ErrClassificationFailed)
	assert.Equal(t, 0, client.calls())
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Quarterly statement")
	assert.Contains(t, prompt, "Quarterly statement")
	assert.Contains(t, prompt, "ONE short tag")
}
