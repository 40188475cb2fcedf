package transport

import (
	"log/slog"
	"net/http"

	"github.com/deepview/deepview-mcp/internal/auth"
	"github.com/deepview/deepview-mcp/internal/config"
	"github.com/deepview/deepview-mcp/internal/corpus"
	"github.com/deepview/deepview-mcp/internal/mcp"
	"github.com/deepview/deepview-mcp/internal/query"
	"github.com/deepview/deepview-mcp/internal/transport/internal/handlers"
	"github.com/deepview/deepview-mcp/internal/transport/internal/middleware"
)

// Services bundles everything the transport layer needs to serve.
type Services struct {
	Dispatcher mcp.Handler
	Resolver   *corpus.Resolver
	Bridge     query.Bridge
	Authorizer auth.Authorizer
	Logger     *slog.Logger

	// Identity metadata surfaced on server-info, health, and discovery.
	ServiceName    string
	ServiceVersion string
	Description    string
}

// NewServer wires the full HTTP surface and returns the ready-to-start
// server.
func NewServer(cfg *config.Config, svc Services) Server {
	return NewHTTPServer(cfg, BuildRouter(cfg, svc))
}

// BuildRouter wires middleware and all route registrations. Split from
// NewServer so tests can drive the routes through httptest.
func BuildRouter(cfg *config.Config, svc Services) Router {
	if cfg == nil {
		panic("config cannot be nil")
	}
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	responder := NewErrorResponder(svc.Authorizer.RequiredScopes())

	router := NewRouter()
	router.Use(
		middleware.NewRecoveryMiddleware(responder, logger),
		middleware.NewLoggingMiddleware(logger),
	)

	info := handlers.ServiceInfo{
		Name:        svc.ServiceName,
		Version:     svc.ServiceVersion,
		Description: svc.Description,
		Model:       svc.Bridge.Model(),
	}

	// The protocol endpoint handles all verbs itself, so it registers
	// without a method pattern. The credential middleware applies only
	// here; REST aliases read the Authorization header directly.
	mcpHandler := handlers.NewMCPHandler(svc.Dispatcher, responder, info, logger)
	router.Handle(cfg.MCPEndpoint, middleware.NewCredentialMiddleware()(mcpHandler))

	router.HandleFunc("GET /health", handlers.NewHealthHandler(svc.Bridge.Model()))

	discoveryCfg := handlers.DiscoveryConfig{}
	if svc.Authorizer.Enabled() {
		discoveryCfg = handlers.DiscoveryConfig{
			Issuer:   cfg.Issuer,
			Audience: cfg.Audience,
			Scopes:   svc.Authorizer.RequiredScopes(),
		}
	}
	router.HandleFunc("GET /.well-known/mcp.json",
		handlers.NewDiscoveryHandler(info, cfg.MCPEndpoint, discoveryCfg))

	notSupported := handlers.NewNotSupportedHandler()
	router.HandleFunc("GET /.well-known/oauth-protected-resource", notSupported)
	router.HandleFunc("GET /.well-known/openid-configuration", notSupported)
	router.HandleFunc("GET /.well-known/oauth-authorization-server", notSupported)
	router.HandleFunc("POST /register", handlers.NewRegistrationHandler())

	restHandler := handlers.NewRESTHandler(svc.Resolver, svc.Bridge, svc.Authorizer, responder, logger)
	router.Handle("GET /codebase/{project}", restHandler)
	router.Handle("GET /{project}", restHandler)

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return router
}
