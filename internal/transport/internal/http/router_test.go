package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deepview/deepview-mcp/internal/transport/transportcore"
)

func TestRouterDispatch(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	r.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health = %d, want 405", rec.Code)
	}
}

func TestRouterPathValue(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	var got string
	r.HandleFunc("GET /{project}", func(w http.ResponseWriter, req *http.Request) {
		got = req.PathValue("project")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/alpha", nil))
	if got != "alpha" {
		t.Errorf("PathValue(project) = %q, want alpha", got)
	}
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) transportcore.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := NewRouter()
	r.Use(mw("outer"), mw("inner"))
	r.HandleFunc("GET /x", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRouterMiddlewareOnlyAppliesToLaterRoutes(t *testing.T) {
	t.Parallel()

	var touched bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			touched = true
			next.ServeHTTP(w, req)
		})
	}

	r := NewRouter()
	r.HandleFunc("GET /before", func(w http.ResponseWriter, req *http.Request) {})
	r.Use(mw)
	r.HandleFunc("GET /after", func(w http.ResponseWriter, req *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/before", nil))
	if touched {
		t.Error("middleware ran on a route registered before Use")
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/after", nil))
	if !touched {
		t.Error("middleware did not run on a route registered after Use")
	}
}
