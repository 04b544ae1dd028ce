package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chaitanya2108/Google-Workspace/internal/jsonrpc"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
	"github.com/chaitanya2108/Google-Workspace/internal/server"
)

// Transport names accepted by --transport.
const (
	transportAuto  = "auto"
	transportStdio = "stdio"
	transportHTTP  = "http"
)

type serveOptions struct {
	transport      string
	httpAddr       string
	metricsEnabled bool
	metricsAddr    string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		Long: `Start serving the operation catalog.

Transport selection (--transport):
  auto   stdin is a terminal: serve HTTP; stdin is a pipe or file: serve
         newline-delimited JSON-RPC on stdin/stdout (default)
  stdio  always serve JSON-RPC on stdin/stdout
  http   always serve HTTP on --http-addr

In stdio mode stdout carries only protocol responses; logs go to stderr.

Required environment:
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET  OAuth client registration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", transportAuto, "Transport: auto, stdio or http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", "", "HTTP listen address. Overrides GWORKSPACE_HTTP_ADDR (default :8080).")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", false, "Serve Prometheus metrics on a dedicated port in HTTP mode. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Metrics server address. Overrides METRICS_ADDR (default :9090).")

	return cmd
}

// selectTransport resolves auto by whether stdin is a terminal.
func selectTransport(requested string, stdinIsTTY bool) (string, error) {
	switch requested {
	case transportStdio, transportHTTP:
		return requested, nil
	case "", transportAuto:
		if stdinIsTTY {
			return transportHTTP, nil
		}
		return transportStdio, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (supported: auto, stdio, http)", requested)
	}
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	transport, err := selectTransport(opts.transport, term.IsTerminal(int(os.Stdin.Fd())))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.httpAddr != "" {
		cfg.HTTP.Addr = opts.httpAddr
	}
	if cmd.Flags().Changed("metrics-enabled") {
		cfg.Metrics.Enabled = opts.metricsEnabled
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(ctx))

	a.logger.Info("starting server",
		slog.String("transport", transport),
		slog.String("version", version),
		slog.Int("tools", len(a.registry.Tools())))

	switch transport {
	case transportStdio:
		return serveStdio(ctx, a, os.Stdin, os.Stdout)
	default:
		return serveHTTP(ctx, a)
	}
}

func serveStdio(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	srv := jsonrpc.NewServer(a.registry, version, jsonrpc.WithLogger(a.logger.With(logging.Component("jsonrpc"))))
	if err := srv.Serve(ctx, in, out); err != nil {
		return fmt.Errorf("stdio server stopped: %w", err)
	}
	a.logger.Info("stdio server stopped")
	return nil
}

func serveHTTP(ctx context.Context, a *app) error {
	if a.cfg.Metrics.Enabled && a.provider.Enabled() {
		metrics, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     a.cfg.Metrics.Addr,
			Provider: a.provider,
			Logger:   a.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metrics.Start(); err != nil {
				a.logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metrics.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	srv := server.New(a.cfg.HTTP, server.Deps{
		Dispatcher: a.registry,
		Auth:       a.manager,
		Metrics:    a.provider.Metrics(),
		Logger:     a.logger,
		Version:    version,
	})
	a.logger.Info("oauth callback registered", slog.String("redirect_uri", a.manager.RedirectURL()))

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server stopped: %w", err)
	}
	return nil
}
