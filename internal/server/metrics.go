package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

const (
	// DefaultMetricsAddr is where /metrics is served unless configured.
	DefaultMetricsAddr = ":9090"

	DefaultMetricsReadTimeout  = 10 * time.Second
	DefaultMetricsWriteTimeout = 10 * time.Second
	DefaultMetricsIdleTimeout  = 60 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of either server.
	DefaultShutdownTimeout = 30 * time.Second
)

// MetricsServerConfig configures the metrics server.
type MetricsServerConfig struct {
	Addr     string
	Provider *instrumentation.Provider
	Logger   *slog.Logger

	// Gatherer defaults to the global registry the otel exporter writes to.
	Gatherer prometheus.Gatherer
}

// MetricsServer serves Prometheus metrics on a port of its own.
type MetricsServer struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// NewMetricsServer requires an enabled instrumentation provider.
func NewMetricsServer(cfg MetricsServerConfig) (*MetricsServer, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("instrumentation provider is required for metrics server")
	}
	if !cfg.Provider.Enabled() {
		return nil, fmt.Errorf("instrumentation provider is not enabled")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultMetricsAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, healthStatusOK)
	})

	return &MetricsServer{
		echo:   e,
		addr:   cfg.Addr,
		logger: cfg.Logger.With(logging.Component("metrics")),
	}, nil
}

// Handler exposes the routes without binding a port.
func (s *MetricsServer) Handler() http.Handler {
	return s.echo
}

// Start listens and serves until Shutdown. It returns nil after a
// graceful shutdown.
func (s *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics server listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: DefaultMetricsReadTimeout,
		WriteTimeout:      DefaultMetricsWriteTimeout,
		IdleTimeout:       DefaultMetricsIdleTimeout,
	}
	srv := s.srv
	s.mu.Unlock()

	s.logger.Info("starting metrics server", slog.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a started server. It is a no-op otherwise.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.logger.Info("shutting down metrics server")
	return srv.Shutdown(ctx)
}

// Addr returns the bound address once started, else the configured one.
func (s *MetricsServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}
