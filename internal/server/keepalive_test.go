package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestKeepAliveRoot(t *testing.T) {
	k := NewKeepAlive(":0", nil, zap.NewNop())
	srv := httptest.NewServer(k.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Bot is alive!" {
		t.Fatalf("unexpected body: %q", string(body))
	}
}

func TestKeepAliveHealthzOK(t *testing.T) {
	k := NewKeepAlive(":0", func(context.Context) bool { return true }, zap.NewNop())
	srv := httptest.NewServer(k.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("unexpected body: %q", string(body))
	}
}

func TestKeepAliveHealthzDegraded(t *testing.T) {
	k := NewKeepAlive(":0", func(context.Context) bool { return false }, zap.NewNop())
	srv := httptest.NewServer(k.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"degraded"`) {
		t.Fatalf("unexpected body: %q", string(body))
	}
}

func TestKeepAliveNilReadyIsHealthy(t *testing.T) {
	k := NewKeepAlive(":0", nil, zap.NewNop())
	srv := httptest.NewServer(k.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 without a readiness probe, got %d", resp.StatusCode)
	}
}
