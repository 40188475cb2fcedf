// Package errors provides domain-specific error handling infrastructure
// for the DeepView gateway.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors categorizing failures. The transport layer maps these
// to wire-level shapes; nothing else about a failure is exposed to
// callers.
var (
	// ErrNotFound indicates no corpus file matched any candidate path.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing or unusable bearer credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid credential without the required scope.
	ErrForbidden = errors.New("forbidden")

	// ErrBadRequest indicates invalid request parameters or format.
	ErrBadRequest = errors.New("bad request")

	// ErrInternal indicates an unexpected failure in dispatch or upstream.
	ErrInternal = errors.New("internal error")
)

// OAuth error codes per RFC 6749 Section 5.2 / RFC 6750. Used in
// WWW-Authenticate headers; the single invalid_token code deliberately
// covers every validation failure so callers cannot probe why a token
// was rejected.
const (
	CodeInvalidToken      = "invalid_token"
	CodeInsufficientScope = "insufficient_scope"
	CodeInvalidRequest    = "invalid_request"
)

// DomainError is an error with subsystem, operation, and diagnostic
// context attached. The context is for server-side logs only and is
// never echoed to a caller.
type DomainError struct {
	// Domain identifies the subsystem (e.g. "auth", "corpus", "query", "mcp").
	Domain string

	// Op identifies the operation that failed (e.g. "Authorize", "ResolveProject").
	Op string

	// Kind is the sentinel error that categorizes this failure.
	Kind error

	// Err is the underlying wrapped error, if any.
	Err error

	// Context holds key-value diagnostic detail.
	Context map[string]any
}

// New creates a DomainError for the given domain and operation. kind
// should be one of the sentinel errors above; err may be nil.
func New(domain, op string, kind, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Err:     err,
		Context: make(map[string]any),
	}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %v: %v", e.Domain, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Domain, e.Op, e.Kind)
}

// Unwrap returns the underlying wrapped error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches target, checking both the Kind
// and the wrapped error chain so errors.Is works on sentinels.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// WithContext adds a key-value pair to the error's context and returns
// the error for chaining.
func (e *DomainError) WithContext(key string, value any) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
