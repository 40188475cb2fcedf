package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorError(t *testing.T) {
	t.Parallel()

	withCause := New("corpus", "ResolveProject", ErrNotFound, fmt.Errorf("no codebase file found"))
	if got := withCause.Error(); !strings.Contains(got, "corpus.ResolveProject") ||
		!strings.Contains(got, "no codebase file found") {
		t.Errorf("Error() = %q, want domain.op and cause", got)
	}

	withoutCause := New("auth", "Authorize", ErrForbidden, nil)
	if got := withoutCause.Error(); got != "auth.Authorize: forbidden" {
		t.Errorf("Error() = %q, want %q", got, "auth.Authorize: forbidden")
	}
}

func TestDomainErrorIs(t *testing.T) {
	t.Parallel()

	err := New("auth", "Authorize", ErrUnauthorized, fmt.Errorf("bad token"))

	if !errors.Is(err, ErrUnauthorized) {
		t.Error("errors.Is should match the kind sentinel")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("errors.Is matched the wrong sentinel")
	}
}

func TestDomainErrorIsWrappedCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := New("query", "Answer", ErrInternal, fmt.Errorf("wrapped: %w", cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := New("mcp", "handleToolsCall", ErrBadRequest, cause)

	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	err := New("auth", "Validate", ErrUnauthorized, nil).
		WithContext("oauth_error", CodeInvalidToken).
		WithContext("key_id", "kid-1")

	if err.Context["oauth_error"] != CodeInvalidToken {
		t.Errorf("Context[oauth_error] = %v, want %q", err.Context["oauth_error"], CodeInvalidToken)
	}
	if err.Context["key_id"] != "kid-1" {
		t.Errorf("Context[key_id] = %v, want kid-1", err.Context["key_id"])
	}
}

func TestWithContextNilMap(t *testing.T) {
	t.Parallel()

	err := &DomainError{Domain: "auth", Op: "x", Kind: ErrUnauthorized}
	err = err.WithContext("k", "v")

	if err.Context["k"] != "v" {
		t.Error("WithContext should initialize a nil context map")
	}
}
