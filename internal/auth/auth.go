// Package auth implements the gateway's authorization policy: bearer
// token validation against the identity provider's published signing
// keys, and per-project scope checks. Enforcement is a deployment-wide
// flag; when disabled every request runs as an anonymous, fully
// authorized subject.
package auth

import (
	"context"
	"time"
)

// ServiceName prefixes per-project scopes.
const ServiceName = "deepview"

// AnonymousSubject is the subject reported when enforcement is disabled.
const AnonymousSubject = "anonymous"

// TokenClaims holds the claims from a successfully validated access
// token. Ephemeral, scoped to one request.
type TokenClaims struct {
	Subject   string
	Issuer    string
	Audience  []string
	Scopes    []string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// HasScope returns true if the token carries the given scope.
func (c *TokenClaims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAllScopes returns true if the token carries every given scope.
// An empty argument list is vacuously true.
func (c *TokenClaims) HasAllScopes(scopes ...string) bool {
	if c == nil {
		return len(scopes) == 0
	}
	for _, required := range scopes {
		if !c.HasScope(required) {
			return false
		}
	}
	return true
}

// ProjectScope returns the scope name granting read access to a project,
// following the "<service>:project:<name>:read" convention.
func ProjectScope(project string) string {
	return ServiceName + ":project:" + project + ":read"
}

// Authorizer decides whether a caller may access a project.
type Authorizer interface {
	// Authorize validates the credential (the raw Authorization header
	// value, possibly empty) and checks scope for project (possibly
	// empty for non-project-scoped calls).
	//
	// Failures carry the unauthorized kind for missing or invalid
	// credentials and the forbidden kind for insufficient scope; the
	// validation cause is diagnostic detail only.
	Authorize(ctx context.Context, credential, project string) (*TokenClaims, error)

	// Enabled reports whether enforcement is on for this deployment.
	Enabled() bool

	// RequiredScopes returns the configured static required-scope set.
	RequiredScopes() []string
}

// Config holds the settings needed to construct an Authorizer.
type Config struct {
	// Enabled toggles enforcement for the whole deployment.
	Enabled bool

	// Issuer is the identity provider's issuer URL.
	Issuer string

	// Audience is the expected aud claim.
	Audience string

	// JWKSURL, when set, skips OIDC discovery.
	JWKSURL string

	// Algorithms is the accepted signing-algorithm allowlist.
	Algorithms []string

	// RequiredScopes is the static required-scope set.
	RequiredScopes []string

	// ClockSkew is the leeway applied to time-based claims.
	ClockSkew time.Duration
}
