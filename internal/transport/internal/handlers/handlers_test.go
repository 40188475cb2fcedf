package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/deepview/deepview-mcp/internal/auth"
	ihttp "github.com/deepview/deepview-mcp/internal/transport/internal/http"
	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

// fakeBridge returns a canned answer.
type fakeBridge struct {
	answer string
	err    error
}

func (f *fakeBridge) Answer(ctx context.Context, project, question, corpusText string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeBridge) Model() string { return "test-model" }

// fakeAuthorizer approves or rejects every request uniformly.
type fakeAuthorizer struct {
	err        error
	enabled    bool
	scopes     []string
	gotProject string
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, credential, project string) (*auth.TokenClaims, error) {
	f.gotProject = project
	if f.err != nil {
		return nil, f.err
	}
	return &auth.TokenClaims{Subject: "user-1"}, nil
}

func (f *fakeAuthorizer) Enabled() bool            { return f.enabled }
func (f *fakeAuthorizer) RequiredScopes() []string { return f.scopes }

func newResponder() transportcore.ErrorResponder {
	return ihttp.NewErrorResponder(nil)
}

func testInfo() ServiceInfo {
	return ServiceInfo{
		Name:        "deepview-mcp",
		Version:     "1.0.0",
		Description: "DeepView MCP Server for codebase analysis",
		Model:       "test-model",
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
}
