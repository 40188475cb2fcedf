// Package http provides the HTTP server and router implementations for
// the transport layer.
package http

import (
	"net/http"

	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// router implements transportcore.Router on top of http.ServeMux.
type router struct {
	mux         *http.ServeMux
	middlewares []transportcore.Middleware
}

// NewRouter creates a router backed by http.ServeMux.
func NewRouter() transportcore.Router {
	return &router{
		mux: http.NewServeMux(),
	}
}

// Handle registers a handler, wrapped with all middleware registered so
// far.
func (r *router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, r.applyMiddleware(handler))
}

// HandleFunc registers a handler function.
func (r *router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.Handle(pattern, handler)
}

// Use appends middleware applied to subsequent registrations. The first
// middleware registered is the outermost layer.
func (r *router) Use(middlewares ...transportcore.Middleware) {
	r.middlewares = append(r.middlewares, middlewares...)
}

// ServeHTTP delegates to the underlying ServeMux.
func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *router) applyMiddleware(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}
