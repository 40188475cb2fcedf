// Package middleware provides HTTP middleware for the transport layer.
package middleware

import (
	"net/http"

	"github.com/deepview/deepview-mcp/internal/auth"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// NewCredentialMiddleware carries the raw Authorization header value
// into the request context. The protocol endpoint cannot authorize up
// front: the target project is a protocol-level argument, so the scope
// check happens inside tools/call. This middleware only transports the
// credential there.
func NewCredentialMiddleware() transportcore.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if credential := r.Header.Get("Authorization"); credential != "" {
				r = r.WithContext(auth.ContextWithCredential(r.Context(), credential))
			}
			next.ServeHTTP(w, r)
		})
	}
}
