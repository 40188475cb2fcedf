package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deepview/deepview-mcp/internal/auth"
	"github.com/deepview/deepview-mcp/internal/config"
	"github.com/deepview/deepview-mcp/internal/corpus"
	"github.com/deepview/deepview-mcp/internal/mcp"
)

// echoDispatcher records the credential carried in the request context.
type echoDispatcher struct {
	gotCredential string
}

func (e *echoDispatcher) HandleRequest(ctx context.Context, req *mcp.Request) (*mcp.Response, error) {
	e.gotCredential = auth.CredentialFromContext(ctx)
	return &mcp.Response{JSONRPC: mcp.JSONRPCVersion, ID: req.ID, Result: struct{}{}}, nil
}

type fakeBridge struct{}

func (fakeBridge) Answer(ctx context.Context, project, question, corpusText string) (string, error) {
	return "answer", nil
}
func (fakeBridge) Model() string { return "test-model" }

type fakeAuthorizer struct {
	enabled bool
	scopes  []string
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, credential, project string) (*auth.TokenClaims, error) {
	return &auth.TokenClaims{Subject: auth.AnonymousSubject}, nil
}
func (f *fakeAuthorizer) Enabled() bool            { return f.enabled }
func (f *fakeAuthorizer) RequiredScopes() []string { return f.scopes }

func testConfig() *config.Config {
	return &config.Config{
		Host:         "127.0.0.1",
		Port:         8019,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  5 * time.Second,
		MCPEndpoint:  "/deepview-mcp/mcp",
		Issuer:       "https://issuer.example.com",
		Audience:     "https://api.example.com",
	}
}

func newTestRouter(t *testing.T, dispatcher mcp.Handler) Router {
	t.Helper()

	root := filepath.Join(t.TempDir(), "codebase")
	if err := os.MkdirAll(filepath.Join(root, "alpha"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "alpha", "codebase.txt"), []byte("corpus"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	return BuildRouter(testConfig(), Services{
		Dispatcher:     dispatcher,
		Resolver:       corpus.NewResolver(root),
		Bridge:         fakeBridge{},
		Authorizer:     &fakeAuthorizer{},
		ServiceName:    "deepview-mcp",
		ServiceVersion: "1.0.0",
		Description:    "DeepView MCP Server for codebase analysis",
	})
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &echoDispatcher{})

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK},
		{name: "discovery", method: http.MethodGet, target: "/.well-known/mcp.json", wantStatus: http.StatusOK},
		{name: "mcp get", method: http.MethodGet, target: "/deepview-mcp/mcp", wantStatus: http.StatusOK},
		{name: "mcp options", method: http.MethodOptions, target: "/deepview-mcp/mcp", wantStatus: http.StatusNoContent},
		{name: "rest alias", method: http.MethodGet, target: "/alpha?question=q", wantStatus: http.StatusOK},
		{name: "rest codebase alias", method: http.MethodGet, target: "/codebase/alpha?question=q", wantStatus: http.StatusOK},
		{name: "rest missing question", method: http.MethodGet, target: "/alpha", wantStatus: http.StatusBadRequest},
		{name: "oidc stub", method: http.MethodGet, target: "/.well-known/openid-configuration", wantStatus: http.StatusNotFound},
		{name: "protected resource stub", method: http.MethodGet, target: "/.well-known/oauth-protected-resource", wantStatus: http.StatusNotFound},
		{name: "auth server stub", method: http.MethodGet, target: "/.well-known/oauth-authorization-server", wantStatus: http.StatusNotFound},
		{name: "register stub", method: http.MethodPost, target: "/register", wantStatus: http.StatusMethodNotAllowed},
		{name: "root", method: http.MethodGet, target: "/", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d (body: %s)",
					tt.method, tt.target, rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestMCPEndpointCarriesCredential(t *testing.T) {
	t.Parallel()

	dispatcher := &echoDispatcher{}
	router := newTestRouter(t, dispatcher)

	body, _ := json.Marshal(mcp.Request{JSONRPC: mcp.JSONRPCVersion, ID: 1, Method: "tools/list"})
	req := httptest.NewRequest(http.MethodPost, "/deepview-mcp/mcp", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer carried-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if dispatcher.gotCredential != "Bearer carried-token" {
		t.Errorf("credential = %q, want the raw Authorization header", dispatcher.gotCredential)
	}
}

func TestRecoveryOnPanickingDispatcher(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, panicDispatcher{})

	body, _ := json.Marshal(mcp.Request{JSONRPC: mcp.JSONRPCVersion, ID: 1, Method: "tools/list"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deepview-mcp/mcp", bytes.NewReader(body)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 from the recovery middleware", rec.Code)
	}
}

type panicDispatcher struct{}

func (panicDispatcher) HandleRequest(ctx context.Context, req *mcp.Request) (*mcp.Response, error) {
	panic("dispatcher exploded")
}

func TestDiscoveryAdvertisesAuthorization(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	router := BuildRouter(testConfig(), Services{
		Dispatcher:     &echoDispatcher{},
		Resolver:       corpus.NewResolver(root),
		Bridge:         fakeBridge{},
		Authorizer:     &fakeAuthorizer{enabled: true, scopes: []string{"deepview:read"}},
		ServiceName:    "deepview-mcp",
		ServiceVersion: "1.0.0",
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/mcp.json", nil))

	var resp struct {
		Authorization *struct {
			Type   string `json:"type"`
			Issuer string `json:"issuer"`
		} `json:"authorization"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Authorization == nil || resp.Authorization.Issuer != "https://issuer.example.com" {
		t.Errorf("authorization = %+v, want the configured issuer advertised", resp.Authorization)
	}
}
