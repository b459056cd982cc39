package engine

import (
	"context"
	"strings"
	"sync"
)

// MockClassifier is a test implementation of the Classifier interface.
// It returns the tag of the first keyword found in the text.
type MockClassifier struct {
	Errors   map[string]error
	keywords []keywordTag
	calls    []string
	mu       sync.Mutex
}

type keywordTag struct {
	keyword string
	tag     string
}

// NewMockClassifier creates a mock with no rules; unmatched text gets an
// empty tag.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{Errors: make(map[string]error)}
}

// On adds a rule mapping texts containing keyword to tag.
func (m *MockClassifier) On(keyword, tag string) *MockClassifier {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords = append(m.keywords, keywordTag{keyword: strings.ToLower(keyword), tag: tag})
	return m
}

// Classify implements Classifier.
func (m *MockClassifier) Classify(_ context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)

	lower := strings.ToLower(text)
	for keyword, err := range m.Errors {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return "", err
		}
	}
	for _, rule := range m.keywords {
		if strings.Contains(lower, rule.keyword) {
			return rule.tag, nil
		}
	}
	return "", nil
}

// Calls returns the texts classified so far.
func (m *MockClassifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
