package genai

import (
	"fmt"
	"strings"

	"storefront/internal/domain"
)

// Classifier turns a raw provider failure (HTTP status plus message) into one
// of the domain error sentinels, or returns the error untouched when nothing
// matches. Classification is substring-based and best-effort: provider message
// formats change, so callers must treat the residual case as expected.
type Classifier func(status int, err error) error

// DefaultClassifier is the production classifier. The substring tables mirror
// the messages Gemini is known to emit for each failure family.
func DefaultClassifier(status int, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())

	switch {
	case status == 429 || containsAny(msg, "quota", "rate limit", "resource has been exhausted"):
		return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, err.Error())
	case status == 503 || containsAny(msg, "503", "unavailable", "overloaded"):
		return fmt.Errorf("%w: %s", domain.ErrModelUnavailable, err.Error())
	case status == 400 || containsAny(msg, "400", "invalid", "malformed"):
		return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err.Error())
	case status == 500 || containsAny(msg, "500", "internal"):
		return fmt.Errorf("%w: %s", domain.ErrAIServer, err.Error())
	}
	return err
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
