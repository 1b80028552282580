package riot

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKind(t *testing.T) {
	authErr := &APIError{Kind: KindAuth, Status: 403, Message: "API key rejected"}

	tests := []struct {
		name string
		err  error
		kind ErrorKind
		want bool
	}{
		{"direct match", authErr, KindAuth, true},
		{"wrong kind", authErr, KindNotFound, false},
		{"wrapped", fmt.Errorf("fetching match: %w", authErr), KindAuth, true},
		{"plain error", errors.New("boom"), KindAuth, false},
		{"nil error", nil, KindAuth, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKind(tt.err, tt.kind); got != tt.want {
				t.Errorf("IsKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	if got := Kind(&APIError{Kind: KindRateLimited}); got != KindRateLimited {
		t.Errorf("Kind() = %q, want %q", got, KindRateLimited)
	}
	if got := Kind(errors.New("boom")); got != "" {
		t.Errorf("Kind() = %q, want empty", got)
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &APIError{Kind: KindTransport, Message: "request failed", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}
