package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the route table: the employees resource under basePath,
// plus /healthz and /metrics at the root.
func NewRouter(
	log *slog.Logger,
	appMetrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
	health http.Handler,
	employees *EmployeeHandler,
	basePath string,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, instrument(log, appMetrics))

	router.Handle("/healthz", health).Methods(http.MethodGet).Name("healthz")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).
		Methods(http.MethodGet).Name("metrics")

	api := router
	if basePath = strings.TrimRight(basePath, "/"); basePath != "" {
		api = router.PathPrefix(basePath).Subrouter()
	}

	for _, route := range employees.Routes() {
		api.HandleFunc(route.Path, route.Handler).Methods(route.Method).Name(route.Name)
	}

	return router
}

// Start serves handler until ctx is cancelled, then shuts the server down gracefully.
func Start(ctx context.Context, log *slog.Logger, handler http.Handler, cfg config.HTTPConfig) error {
	listener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.Port)))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Port, err)
	}

	return Serve(ctx, log, listener, handler, cfg)
}

// Serve is Start on an already bound listener.
func Serve(ctx context.Context, log *slog.Logger, listener net.Listener, handler http.Handler, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		log.InfoContext(ctx, "Starting HTTP server", "addr", listener.Addr().String())
		if serveErr := srv.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	log.InfoContext(ctx, "HTTP server stopped")

	return nil
}
