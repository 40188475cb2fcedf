package auth

import (
	"context"
	"strings"

	"github.com/deepview/deepview-mcp/internal/auth/autherr"
	"github.com/deepview/deepview-mcp/internal/auth/internal/token"
)

// validator is implemented by token.Validator; declared here so tests
// can substitute one.
type validator interface {
	Validate(ctx context.Context, tokenString string) (*token.Claims, error)
}

// authorizer implements Authorizer.
type authorizer struct {
	enabled        bool
	validator      validator
	requiredScopes []string
}

// Authorize validates the credential and applies the scope policy.
func (a *authorizer) Authorize(ctx context.Context, credential, project string) (*TokenClaims, error) {
	if !a.enabled {
		return &TokenClaims{Subject: AnonymousSubject}, nil
	}

	raw, err := parseBearer(credential)
	if err != nil {
		return nil, err
	}

	validated, err := a.validator.Validate(ctx, raw)
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{
		Subject:   validated.Subject,
		Issuer:    validated.Issuer,
		Audience:  validated.Audience,
		Scopes:    validated.Scopes,
		ExpiresAt: validated.ExpiresAt,
		IssuedAt:  validated.IssuedAt,
	}

	if !a.scopeSatisfied(claims, project) {
		return nil, autherr.NewInsufficientScopeError("Authorize", a.requiredScopes, project)
	}

	return claims, nil
}

// Enabled reports whether enforcement is on.
func (a *authorizer) Enabled() bool {
	return a.enabled
}

// RequiredScopes returns the static required-scope set.
func (a *authorizer) RequiredScopes() []string {
	return a.requiredScopes
}

// scopeSatisfied applies the access rule: the full static set present,
// or the per-project read scope present, or no static scopes configured
// and no project context (the anonymous-safe default for calls that are
// not project-scoped).
func (a *authorizer) scopeSatisfied(claims *TokenClaims, project string) bool {
	if len(a.requiredScopes) > 0 && claims.HasAllScopes(a.requiredScopes...) {
		return true
	}
	if project != "" && claims.HasScope(ProjectScope(project)) {
		return true
	}
	return len(a.requiredScopes) == 0 && project == ""
}

// parseBearer extracts the token from an Authorization header value,
// requiring the Bearer scheme (case-insensitive per RFC 6750).
func parseBearer(credential string) (string, error) {
	if credential == "" {
		return "", autherr.NewMissingCredentialError("parseBearer", nil)
	}

	parts := strings.SplitN(credential, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", autherr.NewMissingCredentialError("parseBearer", nil).
			WithContext("reason", "not_bearer_scheme")
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", autherr.NewMissingCredentialError("parseBearer", nil)
	}

	return raw, nil
}
