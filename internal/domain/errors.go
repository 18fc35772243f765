package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrCopilotBusy     = errors.New("copilot busy")
	ErrDraftIncomplete = errors.New("draft needs a name and description")

	// AI provider failure taxonomy. The genai classifier wraps raw provider
	// errors with one of these sentinels; the residual case passes through
	// unwrapped.
	ErrQuotaExceeded    = errors.New("quota exceeded")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrAIServer         = errors.New("ai server error")
)
