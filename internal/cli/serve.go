package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/config"
	httpAdapter "github.com/aretw0/pictograph/pkg/adapters/http"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout gives outstanding requests a deadline on shutdown.
const shutdownTimeout = 5 * time.Second

// Service is the engine and HTTP handler behind `pictograph serve`.
type Service struct {
	Engine   *pictograph.Engine
	Handler  http.Handler
	Registry *prometheus.Registry
}

// NewService builds an engine whose events feed logs, metrics and the SSE
// stream, and mounts the JSON API with /metrics next to it.
func NewService(cfg config.Config, logger *slog.Logger, backend *Backend) *Service {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	streams := httpAdapter.NewStreamManager(logger)
	hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger), streams.Hooks()}
	if cfg.HTTP.Metrics {
		hooks = append(hooks, observability.NewMetrics(reg).Hooks())
	}

	engine := NewEngine(cfg, logger, backend,
		pictograph.WithLifecycleHooks(observability.Chain(hooks...)),
		pictograph.WithName(cfg.HTTP.Graph),
	)

	opts := []httpAdapter.Option{
		httpAdapter.WithStreams(streams),
		httpAdapter.WithLogger(logger),
	}
	if backend != nil {
		opts = append(opts, httpAdapter.WithStore(backend.Store), httpAdapter.WithLocker(backend.Locker))
	}
	api := httpAdapter.NewHandler(engine, opts...)

	mux := http.NewServeMux()
	if cfg.HTTP.Metrics {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
	mux.Handle("/", api)

	return &Service{Engine: engine, Handler: mux, Registry: reg}
}

// Restore opens the configured startup graph. A graph that was never saved
// is not an error; the service then starts empty.
func (s *Service) Restore(ctx context.Context, name string, logger *slog.Logger) error {
	if name == "" {
		return nil
	}
	_, err := s.Engine.Open(ctx, name)
	switch {
	case err == nil:
		logger.Info("graph restored", "document", name, "nodes", s.Engine.Len())
		return nil
	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, pictograph.ErrNoStore):
		logger.Info("starting with an empty graph", "document", name)
		return nil
	case errors.Is(err, domain.ErrCompute):
		logger.Warn("graph restored with evaluation errors", "document", name, "error", err)
		return nil
	default:
		return err
	}
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("pictograph server listening", "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		logger.Info("pictograph server stopped gracefully")
		return nil
	}
}
