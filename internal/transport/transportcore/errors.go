package transportcore

import "errors"

// Sentinel errors for transport operations.
var (
	// ErrServerClosed indicates the server has been shut down.
	ErrServerClosed = errors.New("server closed")

	// ErrQuestionRequired indicates a REST alias call without the
	// mandatory question parameter.
	ErrQuestionRequired = errors.New("Question is required")
)
