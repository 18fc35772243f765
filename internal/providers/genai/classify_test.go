package genai

import (
	"errors"
	"testing"

	"storefront/internal/domain"
)

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name   string
		status int
		msg    string
		want   error
	}{
		{name: "quota substring", msg: "You exceeded your current quota", want: domain.ErrQuotaExceeded},
		{name: "rate limit substring", msg: "Rate limit hit for project", want: domain.ErrQuotaExceeded},
		{name: "resource exhausted", msg: "The resource has been exhausted", want: domain.ErrQuotaExceeded},
		{name: "429 status", status: 429, msg: "too many requests", want: domain.ErrQuotaExceeded},
		{name: "overloaded", msg: "the model is overloaded", want: domain.ErrModelUnavailable},
		{name: "503 substring", msg: "upstream returned 503", want: domain.ErrModelUnavailable},
		{name: "invalid request", msg: "Invalid argument in request", want: domain.ErrInvalidRequest},
		{name: "400 status", status: 400, msg: "bad payload", want: domain.ErrInvalidRequest},
		{name: "internal", msg: "an internal error occurred", want: domain.ErrAIServer},
		{name: "500 status", status: 500, msg: "server fault", want: domain.ErrAIServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultClassifier(tt.status, errors.New(tt.msg))
			if !errors.Is(got, tt.want) {
				t.Errorf("classified as %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultClassifierPassesThroughUnknown(t *testing.T) {
	raw := errors.New("something odd happened")
	got := DefaultClassifier(0, raw)
	if got != raw {
		t.Errorf("unknown error was wrapped: %v", got)
	}
	for _, sentinel := range []error{domain.ErrQuotaExceeded, domain.ErrModelUnavailable, domain.ErrInvalidRequest, domain.ErrAIServer} {
		if errors.Is(got, sentinel) {
			t.Errorf("unknown error matched %v", sentinel)
		}
	}
}

func TestDefaultClassifierNil(t *testing.T) {
	if got := DefaultClassifier(500, nil); got != nil {
		t.Errorf("nil error classified as %v", got)
	}
}
