// Package transportcore provides core types and interfaces for the
// transport layer. It exists so the transport package and its internal
// subpackages can share types without import cycles.
package transportcore

import (
	"context"
	"net/http"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Server manages the HTTP server lifecycle.
type Server interface {
	// Start begins serving. Blocks until the server stops or fails.
	Start() error

	// Shutdown gracefully stops the server, waiting for in-flight
	// requests or the context, whichever ends first.
	Shutdown(ctx context.Context) error

	// Addr returns the bound address; useful with a ":0" port.
	Addr() string
}

// Router is an http.Handler with pattern registration and middleware
// composition. Pattern syntax follows http.ServeMux.
type Router interface {
	http.Handler

	Handle(pattern string, handler http.Handler)
	HandleFunc(pattern string, handler http.HandlerFunc)

	// Use applies middleware to all subsequent registrations, outermost
	// first.
	Use(middlewares ...Middleware)
}

// ErrorResponder converts failures into wire-level error responses.
// Authentication and authorization responses carry WWW-Authenticate
// headers per RFC 6750; no internal validation cause is ever echoed.
type ErrorResponder interface {
	// Unauthorized sends 401 with a WWW-Authenticate challenge.
	Unauthorized(w http.ResponseWriter, err error)

	// Forbidden sends 403 with an insufficient_scope challenge.
	Forbidden(w http.ResponseWriter, err error)

	// NotFound sends 404 with the resolution failure message.
	NotFound(w http.ResponseWriter, err error)

	// BadRequest sends 400 with the input-validation message.
	BadRequest(w http.ResponseWriter, err error)

	// InternalError sends 500 with a generic message; detail is logged
	// server-side only.
	InternalError(w http.ResponseWriter, err error)
}
