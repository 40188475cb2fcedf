package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/deepview/deepview-mcp/internal/config"
)

func TestServerStartShutdown(t *testing.T) {
	t.Parallel()

	router := NewRouter()
	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfg := &config.Config{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  5 * time.Second,
	}

	srv := NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// Wait for the listener to bind.
	var addr string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		addr = srv.Addr()
		if addr != cfg.Addr() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() returned %v after shutdown, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Start() did not return after shutdown")
	}
}
