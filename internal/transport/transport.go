// Package transport provides the HTTP surface of the gateway: the MCP
// protocol endpoint, REST query aliases, health, and discovery.
package transport

import (
	"github.com/deepview/deepview-mcp/internal/config"
	ihttp "github.com/deepview/deepview-mcp/internal/transport/internal/http"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// Re-exported core types so callers need not import transportcore.
type (
	Middleware     = transportcore.Middleware
	Server         = transportcore.Server
	Router         = transportcore.Router
	ErrorResponder = transportcore.ErrorResponder
)

// ErrServerClosed is returned by Shutdown on an already-closed server.
var ErrServerClosed = transportcore.ErrServerClosed

// NewRouter creates a ServeMux-backed router.
func NewRouter() Router {
	return ihttp.NewRouter()
}

// NewHTTPServer creates the HTTP server with the configured timeouts.
// Most callers want NewServer in wire.go, which also builds the router.
func NewHTTPServer(cfg *config.Config, router Router) Server {
	return ihttp.NewServer(cfg, router)
}

// NewErrorResponder creates the wire-level error responder. The scope
// list appears in WWW-Authenticate challenges.
func NewErrorResponder(scopes []string) ErrorResponder {
	return ihttp.NewErrorResponder(scopes)
}
