package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brojonat/arv-relay/rentcast"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultListenPort      = "5000"
	DefaultMaxBytes        = int64(1048576)
	DefaultShutdownTimeout = 15 * time.Second
)

// Config holds the HTTP surface settings. It is built once by the caller.
type Config struct {
	ListenPort      string
	AllowedOrigins  []string
	MaxBytes        int64
	ShutdownTimeout time.Duration
}

func (cfg Config) withDefaults() Config {
	if cfg.ListenPort == "" {
		cfg.ListenPort = DefaultListenPort
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return cfg
}

// RunHTTPServer serves the relay until ctx is cancelled, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func RunHTTPServer(ctx context.Context, l *slog.Logger, cfg Config, c rentcast.Client) error {
	cfg = cfg.withDefaults()
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ListenPort),
		Handler:           getRootHandler(l, cfg, c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info("shutting down http server")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
