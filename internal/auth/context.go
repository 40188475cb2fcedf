package auth

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const credentialContextKey contextKey = "auth_credential"

// ContextWithCredential stores the raw Authorization header value in the
// context. The protocol dispatcher authorizes inside tools/call, once
// the target project is known, so the transport only carries the
// credential through.
func ContextWithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialContextKey, credential)
}

// CredentialFromContext returns the carried credential, or "" if none.
func CredentialFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	credential, _ := ctx.Value(credentialContextKey).(string)
	return credential
}
