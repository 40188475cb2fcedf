package auth

import (
	"context"

	"github.com/deepview/deepview-mcp/internal/auth/internal/jwks"
	"github.com/deepview/deepview-mcp/internal/auth/internal/token"
)

// NewAuthorizer constructs the Authorizer for this deployment. When
// enforcement is enabled and no JWKS URL is configured, it performs OIDC
// discovery against the issuer; a discovery failure is returned to the
// caller and must abort startup.
func NewAuthorizer(ctx context.Context, cfg *Config) (Authorizer, error) {
	if !cfg.Enabled {
		return &authorizer{enabled: false}, nil
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		discovered, err := jwks.Discover(ctx, cfg.Issuer)
		if err != nil {
			return nil, err
		}
		jwksURL = discovered
	}

	keys := jwks.NewClient(jwksURL)
	validator := token.NewValidator(keys, cfg.Issuer, cfg.Audience, cfg.Algorithms, cfg.ClockSkew)

	return &authorizer{
		enabled:        true,
		validator:      validator,
		requiredScopes: cfg.RequiredScopes,
	}, nil
}
