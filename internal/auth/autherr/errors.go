// Package autherr provides error constructors for the authorization
// domain. It is separate from internal/auth so the internal jwks and
// token packages can create auth errors without an import cycle.
//
// Every token-validation failure carries the same invalid_token wire
// code; the distinguishing detail lives in the DomainError context and
// is logged server-side only.
package autherr

import (
	"fmt"

	ierrors "github.com/deepview/deepview-mcp/internal/errors"
)

const domainAuth = "auth"

// NewMissingCredentialError reports an absent or non-Bearer credential.
func NewMissingCredentialError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, err).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("reason", "missing_credential")
}

// NewInvalidTokenError reports a malformed or otherwise unusable token.
func NewInvalidTokenError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, err).
		WithContext("oauth_error", ierrors.CodeInvalidToken)
}

// NewTokenExpiredError reports an expired token.
func NewTokenExpiredError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, err).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("reason", "token_expired")
}

// NewInvalidSignatureError reports a signature verification failure.
func NewInvalidSignatureError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, err).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("reason", "invalid_signature")
}

// NewUnsupportedAlgorithmError reports a signing algorithm outside the
// configured allowlist.
func NewUnsupportedAlgorithmError(op string, algorithm string) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, fmt.Errorf("unsupported algorithm")).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("algorithm", algorithm)
}

// NewMissingClaimError reports a required JWT claim that is absent.
func NewMissingClaimError(op string, claim string) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, fmt.Errorf("missing claim: %s", claim)).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("missing_claim", claim)
}

// NewInvalidIssuerError reports an issuer claim mismatch.
func NewInvalidIssuerError(op string, expected, actual string) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, fmt.Errorf("invalid issuer")).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("expected_issuer", expected).
		WithContext("actual_issuer", actual)
}

// NewInvalidAudienceError reports an audience claim mismatch.
func NewInvalidAudienceError(op string, expected string, actual []string) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, fmt.Errorf("invalid audience")).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("expected_audience", expected).
		WithContext("actual_audience", actual)
}

// NewKeyNotFoundError reports a key ID absent from the provider's JWKS.
func NewKeyNotFoundError(op string, keyID string) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, fmt.Errorf("key not found")).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("key_id", keyID)
}

// NewJWKSFetchError reports a failure retrieving the signing key set.
func NewJWKSFetchError(op string, jwksURL string, err error) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrInternal, fmt.Errorf("jwks fetch failed: %v", err)).
		WithContext("jwks_url", jwksURL)
}

// NewDiscoveryError reports a failure reading the identity provider's
// OIDC discovery document. This is fatal at startup, not per-request.
func NewDiscoveryError(op string, issuer string, err error) *ierrors.DomainError {
	return ierrors.New(domainAuth, op, ierrors.ErrInternal, fmt.Errorf("oidc discovery failed: %v", err)).
		WithContext("issuer", issuer)
}

// NewInsufficientScopeError reports a valid token lacking required scope.
func NewInsufficientScopeError(op string, required []string, project string) *ierrors.DomainError {
	e := ierrors.New(domainAuth, op, ierrors.ErrForbidden, fmt.Errorf("insufficient scope")).
		WithContext("oauth_error", ierrors.CodeInsufficientScope).
		WithContext("required_scopes", required)
	if project != "" {
		e = e.WithContext("project", project)
	}
	return e
}
