package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Veraticus/shelf/internal/common"
)

// Client sends one prompt to a language model and returns its raw reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// systemPrompt frames every request regardless of provider.
const systemPrompt = "You are a librarian who files documents into folders. Respond with a single short tag and nothing else."

// statusError converts a non-200 provider response into an error that the
// retry logic understands.
func statusError(provider string, status int, body []byte) error {
	err := fmt.Errorf("%s API error (status %d): %s", provider, status, truncateBody(body))
	switch {
	case status == http.StatusTooManyRequests:
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrRateLimit, err), Retryable: true}
	case status >= http.StatusInternalServerError:
		return &common.RetryableError{Err: err, Retryable: true}
	default:
		return err
	}
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
