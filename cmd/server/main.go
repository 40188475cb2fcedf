// Package main provides the entry point for the DeepView MCP gateway.
// It wires together all components using dependency injection and
// manages the server lifecycle with graceful shutdown.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepview/deepview-mcp/internal/auth"
	"github.com/deepview/deepview-mcp/internal/config"
	"github.com/deepview/deepview-mcp/internal/corpus"
	"github.com/deepview/deepview-mcp/internal/mcp"
	"github.com/deepview/deepview-mcp/internal/query"
	"github.com/deepview/deepview-mcp/internal/transport"
)

const (
	serviceName        = "deepview-mcp"
	serviceVersion     = "1.0.0"
	serviceDescription = "DeepView MCP Server for codebase analysis"
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded", "config", cfg.String())

	// A positional argument overrides the configured default corpus file.
	codebaseFile := cfg.CodebaseFile
	if flag.Arg(0) != "" {
		codebaseFile = flag.Arg(0)
	}

	resolver := corpus.NewResolver(cfg.CodebaseRoot)
	store := corpus.NewStore()
	loadDefaultCorpus(resolver, store, codebaseFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authorizer, err := auth.NewAuthorizer(ctx, &auth.Config{
		Enabled:        cfg.AuthEnabled,
		Issuer:         cfg.Issuer,
		Audience:       cfg.Audience,
		JWKSURL:        cfg.JWKSURL,
		Algorithms:     cfg.Algorithms,
		RequiredScopes: cfg.RequiredScopes,
		ClockSkew:      cfg.ClockSkew,
	})
	if err != nil {
		log.Fatalf("failed to initialize authorizer: %v", err)
	}

	slog.Info("authorization initialized",
		"enabled", cfg.AuthEnabled,
		"issuer", cfg.Issuer,
		"required_scopes", cfg.RequiredScopes,
	)

	bridge := query.NewGeminiBridge(cfg.GeminiAPIKey, cfg.GeminiModel)

	dispatcher := mcp.NewDispatcher(mcp.Config{
		ServerName:    serviceName,
		ServerVersion: serviceVersion,
	}, resolver, store, bridge, authorizer)

	server := transport.NewServer(cfg, transport.Services{
		Dispatcher:     dispatcher,
		Resolver:       resolver,
		Bridge:         bridge,
		Authorizer:     authorizer,
		Logger:         logger,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Description:    serviceDescription,
	})

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr(), "mcp_endpoint", cfg.MCPEndpoint)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// loadDefaultCorpus fills the default-corpus slot at startup: the named
// file when one was given, else the first plain-text file under the
// corpus root. Running with no default corpus is legal; per-request
// codebase_file arguments still work.
func loadDefaultCorpus(resolver *corpus.Resolver, store *corpus.Store, codebaseFile string) {
	if codebaseFile == "" {
		codebaseFile = resolver.DefaultFile()
	}
	if codebaseFile == "" {
		slog.Warn("no default codebase file found; requests must name one explicitly",
			"root", resolver.Root())
		return
	}

	res, err := resolver.ResolveFile(codebaseFile)
	if err != nil {
		slog.Warn("failed to load default codebase file", "file", codebaseFile, "error", err)
		return
	}

	// The default slot always belongs to the default project, wherever
	// the file happens to live on disk.
	res.Project = corpus.DefaultProject
	store.Load(res)
	slog.Info("default codebase loaded", "file", res.Path, "bytes", len(res.Text))
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
