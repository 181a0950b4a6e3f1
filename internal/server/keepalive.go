package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const readHeaderTimeout = 5 * time.Second

// KeepAlive is the minimal HTTP surface hosting platforms ping to keep the
// bot process awake.
type KeepAlive struct {
	addr   string
	logger *zap.Logger
	ready  func(ctx context.Context) bool
}

func NewKeepAlive(addr string, ready func(ctx context.Context) bool, logger *zap.Logger) *KeepAlive {
	return &KeepAlive{
		addr:   addr,
		logger: logger,
		ready:  ready,
	}
}

// Run serves until the context is cancelled.
func (k *KeepAlive) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              k.addr,
		Handler:           k.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			k.logger.Error("Keep-alive shutdown failed", zap.Error(err))
		}
	}()

	k.logger.Info("Keep-alive server started", zap.String("addr", k.addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	k.logger.Info("Keep-alive server stopped")
	return nil
}

// Handler builds the router; split out for tests.
func (k *KeepAlive) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Bot is alive!"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status := "ok"
		code := http.StatusOK
		if k.ready != nil && !k.ready(req.Context()) {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	return r
}
