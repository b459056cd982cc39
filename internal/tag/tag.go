// Package tag turns user- or model-supplied labels into folder names that
// are safe on every common filesystem.
package tag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/shelf/internal/common"
)

const (
	// MaxLength caps tags derived from classifier responses, in runes.
	MaxLength = 40
	// Fallback is used when a classifier response sanitizes to nothing.
	Fallback = "Uncategorized"
	// Forbidden lists the characters Windows rejects in folder names.
	Forbidden = `\/:*?"<>|`
)

// Sanitize strips forbidden characters and surrounding whitespace.
// An empty result means the tag is unusable.
func Sanitize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(Forbidden, r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(cleaned)
}

// Truncate returns at most n runes of s with trailing whitespace removed.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}

// FromResponse derives a tag from free-form classifier output: only the
// first non-empty line counts, it is sanitized, defaults to Fallback and is
// capped at MaxLength.
func FromResponse(response string) string {
	line := firstLine(cleanWrapper(response))
	cleaned := Sanitize(strings.Trim(line, "`'*#.,;"))
	if cleaned == "" {
		return Fallback
	}
	return Truncate(cleaned, MaxLength)
}

// Validate rejects tags that are empty after sanitizing, and tags made only
// of dots, which would name the base folder or its parent.
func Validate(raw string) (string, error) {
	cleaned := Sanitize(raw)
	if cleaned == "" || strings.Trim(cleaned, ".") == "" {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidTag, raw)
	}
	return cleaned, nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// cleanWrapper removes a surrounding markdown code fence, which some models
// emit even for one-word answers.
func cleanWrapper(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
