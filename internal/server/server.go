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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/time/rate"

	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

// DefaultAddr is the HTTP listen address unless configured.
const DefaultAddr = ":8080"

// Dispatcher lists and invokes operations by name.
type Dispatcher interface {
	Tools() []mcp.Tool
	Invoke(ctx context.Context, name string, args map[string]any) (*tools.Result, error)
}

// Authorizer completes the OAuth redirect.
type Authorizer interface {
	CompleteAuthorization(ctx context.Context, code, state string) (string, error)
}

// Config configures the HTTP adapter.
type Config struct {
	Addr              string        `koanf:"addr" validate:"required"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimit         float64       `koanf:"rate_limit" validate:"gte=0"`
	RateBurst         int           `koanf:"rate_burst" validate:"gte=0"`
	BodyLimit         string        `koanf:"body_limit"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	// MCPEndpoint mounts the MCP streamable transport on /mcp.
	MCPEndpoint bool `koanf:"mcp_endpoint"`
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:              DefaultAddr,
		CORSOrigins:       []string{"*"},
		RateLimit:         20,
		RateBurst:         40,
		BodyLimit:         "10M",
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   DefaultShutdownTimeout,
		MCPEndpoint:       true,
	}
}

// Deps are the collaborators the adapter serves.
type Deps struct {
	Dispatcher Dispatcher
	Auth       Authorizer
	Metrics    *instrumentation.Metrics
	Logger     *slog.Logger
	Version    string
}

// Server is the HTTP adapter.
type Server struct {
	cfg        Config
	echo       *echo.Echo
	dispatcher Dispatcher
	auth       Authorizer
	health     *HealthChecker
	validate   *validator.Validate
	logger     *slog.Logger
	version    string

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// New builds the echo instance with middleware and every route.
func New(cfg Config, deps Deps) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:        cfg,
		echo:       echo.New(),
		dispatcher: deps.Dispatcher,
		auth:       deps.Auth,
		health:     NewHealthChecker(deps.Version, len(deps.Dispatcher.Tools())),
		validate:   validator.New(),
		logger:     logger.With(logging.Component("http")),
		version:    deps.Version,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(s.logger))
	e.Use(requestMetrics(deps.Metrics))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "Mcp-Session-Id"},
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.RateLimit > 0 {
		e.Use(rateLimiter(cfg.RateLimit, cfg.RateBurst))
	}

	s.health.Register(e)
	e.GET("/", s.index)
	e.GET("/oauth/callback", s.oauthCallback)
	s.registerAPI(e.Group("/api"))
	if cfg.MCPEndpoint {
		h := newMCPHandler(deps.Dispatcher, deps.Version)
		e.Any(mcpEndpointPath, echo.WrapHandler(h))
	}
	return s
}

// Handler returns the routed handler without binding a port.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Health returns the probe state.
func (s *Server) Health() *HealthChecker {
	return s.health
}

// Start listens on the configured address and serves until Shutdown or
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	srv := s.srv
	s.mu.Unlock()

	drained := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(drained)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown failed", logging.Err(err))
		}
	})

	s.logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
	err = srv.Serve(ln)
	if !stop() {
		// Serve returns as soon as shutdown begins; wait for the drain.
		<-drained
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown fails readiness and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.MarkShuttingDown()
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

func rateLimiter(limit float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/healthz" || p == "/readyz"
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorBody{Error: "unable to identify client", Kind: "protocol"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded", Kind: "protocol"})
		},
	})
}

func (s *Server) index(c echo.Context) error {
	routes := []string{
		"/health",
		"/oauth/callback",
		"/api/accounts",
		"/api/gmail",
		"/api/calendar",
		"/api/drive",
		"/api/contacts",
		"/api/docs",
		"/api/sheets",
	}
	if s.cfg.MCPEndpoint {
		routes = append(routes, mcpEndpointPath)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"name":    "google-workspace-mcp",
		"version": s.version,
		"routes":  routes,
	})
}
