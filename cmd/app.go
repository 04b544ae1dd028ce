package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chaitanya2108/Google-Workspace/internal/config"
	"github.com/chaitanya2108/Google-Workspace/internal/credstore"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/catalog"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	manager  *google.Manager
	registry *tools.Registry
}

// loadConfig applies the global flags on top of file and environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Options{File: flags.configFile})
	if err != nil {
		return nil, err
	}
	if flags.projectRoot != "" {
		cfg.ProjectRoot = flags.projectRoot
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	cfg.Instrumentation.ServiceVersion = version
	return cfg, config.Validate(cfg)
}

// newApp wires the credential store, auth manager and registry. The
// caller must Close it.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	slog.SetDefault(logger)

	provider, err := instrumentation.NewProvider(ctx, cfg.Instrumentation)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	store := credstore.NewFileStore(cfg.TokenDir(), logger)
	manager, err := google.NewManager(google.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURI,
		Scopes:       cfg.Google.Scopes,
		StateTTL:     cfg.Google.StateTTL,
	}, store, provider.Metrics(), logger)
	if err != nil {
		return nil, errors.Join(err, provider.Shutdown(ctx))
	}

	registry, err := catalog.NewRegistry(manager, cfg.WorkspaceDir(),
		common.Instrument(provider.Metrics(), provider.Audit(), logger))
	if err != nil {
		return nil, errors.Join(err, provider.Shutdown(ctx))
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		manager:  manager,
		registry: registry,
	}, nil
}

// Close flushes telemetry.
func (a *app) Close(ctx context.Context) {
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}

// withApp loads configuration, builds the app and runs fn.
func withApp(ctx context.Context, fn func(a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(ctx))
	return fn(a)
}
