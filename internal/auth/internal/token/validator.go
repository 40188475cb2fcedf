// Package token validates bearer access tokens as JWTs and derives the
// granted scope set from the resulting claims.
package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deepview/deepview-mcp/internal/auth/autherr"
)

// KeyProvider resolves a verification key by key ID. This small
// interface avoids importing the jwks package directly and keeps the
// validator testable with local keys.
type KeyProvider interface {
	Key(ctx context.Context, keyID string) (any, error)
}

// Claims holds the validated claims extracted from an access token.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	Scopes    []string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// HasScope returns true if the token carries the given scope.
func (c *Claims) HasScope(scope string) bool {
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
func (c *Claims) HasAllScopes(scopes ...string) bool {
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

// Validator verifies access tokens: signature via the key provider,
// expiry with clock-skew leeway, issuer, and audience.
type Validator struct {
	keys       KeyProvider
	issuer     string
	audience   string
	clockSkew  time.Duration
	algorithms map[string]bool
}

// NewValidator creates a token validator. algorithms is the accepted
// signing-algorithm allowlist; validating it explicitly blocks
// algorithm-confusion attacks.
func NewValidator(keys KeyProvider, issuer, audience string, algorithms []string, clockSkew time.Duration) *Validator {
	allowed := make(map[string]bool, len(algorithms))
	for _, alg := range algorithms {
		allowed[alg] = true
	}
	return &Validator{
		keys:       keys,
		issuer:     issuer,
		audience:   audience,
		clockSkew:  clockSkew,
		algorithms: allowed,
	}
}

// Validate verifies tokenString and returns its claims. Every failure
// maps to the unauthorized kind; the specific cause stays in the error
// context as diagnostic detail and must never surface as a
// distinguishable wire-level code.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	// Parse unverified first to read the header for alg and kid.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	unverified, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, autherr.NewInvalidTokenError("Validate", fmt.Errorf("failed to parse token: %w", err))
	}

	alg, ok := unverified.Header["alg"].(string)
	if !ok || alg == "" {
		return nil, autherr.NewUnsupportedAlgorithmError("Validate", "none")
	}
	if !v.algorithms[alg] {
		return nil, autherr.NewUnsupportedAlgorithmError("Validate", alg)
	}

	kid, ok := unverified.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, autherr.NewInvalidTokenError("Validate", fmt.Errorf("missing kid in token header"))
	}

	key, err := v.keys.Key(ctx, kid)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, autherr.NewKeyNotFoundError("Validate", kid)
	}

	validated, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != alg {
			return nil, autherr.NewUnsupportedAlgorithmError("Validate", t.Method.Alg())
		}
		return key, nil
	}, jwt.WithLeeway(v.clockSkew))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherr.NewTokenExpiredError("Validate", err)
		}
		return nil, autherr.NewInvalidSignatureError("Validate", err)
	}
	if !validated.Valid {
		return nil, autherr.NewInvalidTokenError("Validate", fmt.Errorf("token is invalid"))
	}

	mapClaims, ok := validated.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherr.NewInvalidTokenError("Validate", fmt.Errorf("invalid claims type"))
	}

	claims, err := v.extractClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if claims.Issuer != v.issuer {
		return nil, autherr.NewInvalidIssuerError("Validate", v.issuer, claims.Issuer)
	}

	if !v.audienceMatches(claims.Audience) {
		return nil, autherr.NewInvalidAudienceError("Validate", v.audience, claims.Audience)
	}

	return claims, nil
}

func (v *Validator) extractClaims(mapClaims jwt.MapClaims) (*Claims, error) {
	claims := &Claims{}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, autherr.NewMissingClaimError("extractClaims", "sub")
	}
	claims.Subject = sub

	iss, err := mapClaims.GetIssuer()
	if err != nil || iss == "" {
		return nil, autherr.NewMissingClaimError("extractClaims", "iss")
	}
	claims.Issuer = iss

	aud, err := mapClaims.GetAudience()
	if err != nil || len(aud) == 0 {
		return nil, autherr.NewMissingClaimError("extractClaims", "aud")
	}
	claims.Audience = aud

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, autherr.NewMissingClaimError("extractClaims", "exp")
	}
	claims.ExpiresAt = exp.Time

	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	claims.Scopes = extractScopes(mapClaims)

	return claims, nil
}

func (v *Validator) audienceMatches(audiences []string) bool {
	for _, aud := range audiences {
		if aud == v.audience {
			return true
		}
	}
	return false
}

// extractScopes derives the scope set as the union of a space-delimited
// "scope" claim and a list-valued "scopes" claim.
func extractScopes(mapClaims jwt.MapClaims) []string {
	seen := make(map[string]bool)
	var scopes []string

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		scopes = append(scopes, s)
	}

	if scopeStr, ok := mapClaims["scope"].(string); ok {
		for _, s := range strings.Split(scopeStr, " ") {
			add(s)
		}
	}

	if list, ok := mapClaims["scopes"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	}

	return scopes
}
