// Package config provides environment-sourced configuration for the
// DeepView gateway. A .env file is loaded first when present, then real
// environment variables take precedence.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the complete gateway configuration in a flat structure.
type Config struct {
	// Server settings
	Host        string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port        int           `env:"SERVER_PORT" envDefault:"8019"`
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	// WriteTimeout must cover the upstream model call, which dominates
	// request latency.
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"150s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`

	// MCPEndpoint is the path the MCP protocol endpoint is served at.
	MCPEndpoint string `env:"MCP_ENDPOINT" envDefault:"/deepview-mcp/mcp"`

	// Upstream model settings
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Corpus settings
	// CodebaseRoot is the deployment root searched for project corpus files.
	CodebaseRoot string `env:"CODEBASE_ROOT" envDefault:"/app/codebase"`
	// CodebaseFile optionally names a corpus file loaded at startup as the
	// process-wide default.
	CodebaseFile string `env:"CODEBASE_FILE"`

	// OAuth settings. Authorization is all-or-nothing per deployment:
	// when AuthEnabled is false every request runs anonymous.
	AuthEnabled bool   `env:"AUTH_ENABLED" envDefault:"false"`
	Issuer      string `env:"OAUTH_ISSUER"`
	Audience    string `env:"OAUTH_AUDIENCE"`
	// JWKSURL skips OIDC discovery when set explicitly.
	JWKSURL        string        `env:"OAUTH_JWKS_URL"`
	Algorithms     []string      `env:"OAUTH_ALGORITHMS" envDefault:"RS256"`
	RequiredScopes []string      `env:"OAUTH_REQUIRED_SCOPES"`
	ClockSkew      time.Duration `env:"OAUTH_CLOCK_SKEW" envDefault:"30s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment, applying defaults and
// validating the result. Validation failures are meant to abort startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// String returns a redacted representation for startup logging.
func (c *Config) String() string {
	key := c.GeminiAPIKey
	if key != "" {
		key = "[redacted]"
	}
	return fmt.Sprintf("Config{Addr: %s, MCPEndpoint: %s, Model: %s, APIKey: %s, CodebaseRoot: %s, AuthEnabled: %v, Issuer: %s, Audience: %s, Algorithms: %v, RequiredScopes: %v, ClockSkew: %v}",
		c.Addr(), c.MCPEndpoint, c.GeminiModel, key, c.CodebaseRoot,
		c.AuthEnabled, c.Issuer, c.Audience, c.Algorithms, c.RequiredScopes, c.ClockSkew)
}
