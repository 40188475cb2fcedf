package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/deepview/deepview-mcp/internal/auth/autherr"
	"github.com/deepview/deepview-mcp/internal/auth/internal/token"
	ierrors "github.com/deepview/deepview-mcp/internal/errors"
)

// fakeValidator returns canned claims or a canned error.
type fakeValidator struct {
	claims *token.Claims
	err    error
}

func (f *fakeValidator) Validate(ctx context.Context, tokenString string) (*token.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func claimsWithScopes(scopes ...string) *token.Claims {
	return &token.Claims{
		Subject:  "user-1",
		Issuer:   "https://issuer.example.com",
		Audience: []string{"https://api.example.com"},
		Scopes:   scopes,
	}
}

func TestAuthorizeDisabled(t *testing.T) {
	t.Parallel()

	a := &authorizer{enabled: false}

	claims, err := a.Authorize(context.Background(), "", "someproject")
	if err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}
	if claims.Subject != AnonymousSubject {
		t.Errorf("Subject = %q, want %q", claims.Subject, AnonymousSubject)
	}
}

func TestAuthorizeCredentialParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		credential string
	}{
		{name: "empty", credential: ""},
		{name: "no scheme", credential: "sometoken"},
		{name: "wrong scheme", credential: "Basic dXNlcjpwYXNz"},
		{name: "bearer without token", credential: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := &authorizer{
				enabled:   true,
				validator: &fakeValidator{claims: claimsWithScopes()},
			}

			_, err := a.Authorize(context.Background(), tt.credential, "")
			if !errors.Is(err, ierrors.ErrUnauthorized) {
				t.Errorf("Authorize(%q) error = %v, want unauthorized", tt.credential, err)
			}
		})
	}
}

func TestAuthorizeCaseInsensitiveBearer(t *testing.T) {
	t.Parallel()

	a := &authorizer{
		enabled:   true,
		validator: &fakeValidator{claims: claimsWithScopes()},
	}

	if _, err := a.Authorize(context.Background(), "bearer sometoken", ""); err != nil {
		t.Errorf("lowercase bearer scheme should be accepted, got %v", err)
	}
}

func TestAuthorizeValidatorFailure(t *testing.T) {
	t.Parallel()

	a := &authorizer{
		enabled:   true,
		validator: &fakeValidator{err: autherr.NewInvalidTokenError("Validate", errors.New("bad"))},
	}

	_, err := a.Authorize(context.Background(), "Bearer sometoken", "")
	if !errors.Is(err, ierrors.ErrUnauthorized) {
		t.Errorf("Authorize() error = %v, want unauthorized", err)
	}
}

func TestAuthorizeScopePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requiredScopes []string
		tokenScopes    []string
		project        string
		wantForbidden  bool
	}{
		{
			name:           "static scopes satisfied",
			requiredScopes: []string{"deepview:read"},
			tokenScopes:    []string{"deepview:read", "extra"},
			project:        "alpha",
		},
		{
			name:           "static scopes partially satisfied",
			requiredScopes: []string{"deepview:read", "deepview:query"},
			tokenScopes:    []string{"deepview:read"},
			project:        "alpha",
			wantForbidden:  true,
		},
		{
			name:        "project scope grants access",
			tokenScopes: []string{"deepview:project:alpha:read"},
			project:     "alpha",
		},
		{
			name:          "project scope for different project",
			tokenScopes:   []string{"deepview:project:beta:read"},
			project:       "alpha",
			wantForbidden: true,
		},
		{
			name:           "project scope overrides unsatisfied static set",
			requiredScopes: []string{"deepview:admin"},
			tokenScopes:    []string{"deepview:project:alpha:read"},
			project:        "alpha",
		},
		{
			name:        "no static scopes and no project",
			tokenScopes: nil,
			project:     "",
		},
		{
			name:          "no static scopes but project without scope",
			tokenScopes:   nil,
			project:       "alpha",
			wantForbidden: true,
		},
		{
			name:           "static scopes configured and no project",
			requiredScopes: []string{"deepview:read"},
			tokenScopes:    nil,
			project:        "",
			wantForbidden:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := &authorizer{
				enabled:        true,
				validator:      &fakeValidator{claims: claimsWithScopes(tt.tokenScopes...)},
				requiredScopes: tt.requiredScopes,
			}

			claims, err := a.Authorize(context.Background(), "Bearer sometoken", tt.project)
			if tt.wantForbidden {
				if !errors.Is(err, ierrors.ErrForbidden) {
					t.Errorf("Authorize() error = %v, want forbidden", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if claims.Subject != "user-1" {
				t.Errorf("Subject = %q, want user-1", claims.Subject)
			}
		})
	}
}

func TestProjectScope(t *testing.T) {
	t.Parallel()

	if got := ProjectScope("alpha"); got != "deepview:project:alpha:read" {
		t.Errorf("ProjectScope() = %q, want deepview:project:alpha:read", got)
	}
}

func TestTokenClaimsHasScope(t *testing.T) {
	t.Parallel()

	claims := &TokenClaims{Scopes: []string{"a", "b"}}

	if !claims.HasScope("a") {
		t.Error("HasScope(a) = false, want true")
	}
	if claims.HasScope("c") {
		t.Error("HasScope(c) = true, want false")
	}
	if !claims.HasAllScopes("a", "b") {
		t.Error("HasAllScopes(a, b) = false, want true")
	}
	if claims.HasAllScopes("a", "c") {
		t.Error("HasAllScopes(a, c) = true, want false")
	}

	var nilClaims *TokenClaims
	if nilClaims.HasScope("a") {
		t.Error("nil claims should have no scopes")
	}
	if !nilClaims.HasAllScopes() {
		t.Error("empty requirement is vacuously true even for nil claims")
	}
}

func TestCredentialContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithCredential(context.Background(), "Bearer abc")
	if got := CredentialFromContext(ctx); got != "Bearer abc" {
		t.Errorf("CredentialFromContext() = %q, want Bearer abc", got)
	}

	if got := CredentialFromContext(context.Background()); got != "" {
		t.Errorf("CredentialFromContext() on empty context = %q, want empty", got)
	}
}
