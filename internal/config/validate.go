package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is complete and internally
// consistent. The process must refuse to start on any error returned
// here; serving with a broken authorization configuration is worse
// than not serving at all.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := validateUpstream(cfg); err != nil {
		return fmt.Errorf("invalid upstream config: %w", err)
	}

	if err := validateOAuth(cfg); err != nil {
		return fmt.Errorf("invalid oauth config: %w", err)
	}

	return nil
}

func validateServer(cfg *Config) error {
	if cfg.Host == "" {
		return fmt.Errorf("SERVER_HOST is required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be in range 1-65535, got %d", cfg.Port)
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}
	if !strings.HasPrefix(cfg.MCPEndpoint, "/") {
		return fmt.Errorf("MCP_ENDPOINT must start with /")
	}
	return nil
}

func validateUpstream(cfg *Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}
	if cfg.CodebaseRoot == "" {
		return fmt.Errorf("CODEBASE_ROOT is required")
	}
	return nil
}

func validateOAuth(cfg *Config) error {
	if !cfg.AuthEnabled {
		return nil
	}

	if cfg.Issuer == "" {
		return fmt.Errorf("OAUTH_ISSUER is required when AUTH_ENABLED is true")
	}
	if err := validateAbsoluteURL("OAUTH_ISSUER", cfg.Issuer); err != nil {
		return err
	}

	if cfg.Audience == "" {
		return fmt.Errorf("OAUTH_AUDIENCE is required when AUTH_ENABLED is true")
	}

	if cfg.JWKSURL != "" {
		if err := validateAbsoluteURL("OAUTH_JWKS_URL", cfg.JWKSURL); err != nil {
			return err
		}
	}

	if len(cfg.Algorithms) == 0 {
		return fmt.Errorf("OAUTH_ALGORITHMS must list at least one algorithm")
	}

	if cfg.ClockSkew < 0 {
		return fmt.Errorf("OAUTH_CLOCK_SKEW must be non-negative")
	}

	return nil
}

func validateAbsoluteURL(name, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if !parsed.IsAbs() {
		return fmt.Errorf("%s must be an absolute URL", name)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("%s must use http or https scheme", name)
	}
	return nil
}
