package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
	"github.com/chaitanya2108/Google-Workspace/internal/server"
)

// Config is the full process configuration.
type Config struct {
	Google GoogleConfig `koanf:"google"`

	// ProjectRoot holds config/tokens and workspace/<email>/downloads.
	ProjectRoot string `koanf:"project_root" validate:"required"`

	HTTP            server.Config          `koanf:"http"`
	Log             logging.Config         `koanf:"log"`
	Metrics         MetricsConfig          `koanf:"metrics"`
	Instrumentation instrumentation.Config `koanf:"instrumentation"`
}

// GoogleConfig is the OAuth client registration.
type GoogleConfig struct {
	ClientID     string        `koanf:"client_id" validate:"required"`
	ClientSecret string        `koanf:"client_secret" validate:"required"`
	RedirectURI  string        `koanf:"redirect_uri" validate:"required,url"`
	StateTTL     time.Duration `koanf:"state_ttl" validate:"gt=0"`
	Scopes       []string      `koanf:"scopes"`
}

// MetricsConfig controls the Prometheus server in HTTP mode.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" validate:"required"`
}

// TokenDir is where credential files live.
func (c *Config) TokenDir() string {
	return filepath.Join(c.ProjectRoot, "config", "tokens")
}

// WorkspaceDir is the root of per-account download directories.
func (c *Config) WorkspaceDir() string {
	return filepath.Join(c.ProjectRoot, "workspace")
}

// Default returns the configuration used before any source is applied.
func Default() Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return Config{
		Google: GoogleConfig{
			RedirectURI: google.DefaultRedirectURL,
			StateTTL:    10 * time.Minute,
		},
		ProjectRoot:     root,
		HTTP:            server.DefaultConfig(),
		Log:             logging.Config{Level: "info", Format: logging.FormatText},
		Metrics:         MetricsConfig{Addr: server.DefaultMetricsAddr},
		Instrumentation: instrumentation.DefaultConfig(),
	}
}

// envKeys maps the recognised environment variables onto config keys.
// Anything else in the environment is ignored.
var envKeys = map[string]string{
	"GOOGLE_CLIENT_ID":              "google.client_id",
	"GOOGLE_CLIENT_SECRET":          "google.client_secret",
	"GOOGLE_REDIRECT_URI":           "google.redirect_uri",
	"GOOGLE_WORKSPACE_PROJECT_ROOT": "project_root",
	"GWORKSPACE_AUTH_STATE_TTL":     "google.state_ttl",
	"GWORKSPACE_HTTP_ADDR":          "http.addr",
	"GWORKSPACE_CORS_ORIGINS":       "http.cors_origins",
	"GWORKSPACE_RATE_LIMIT":         "http.rate_limit",
	"GWORKSPACE_RATE_BURST":         "http.rate_burst",
	"GWORKSPACE_MCP_ENDPOINT":       "http.mcp_endpoint",
	"GWORKSPACE_LOG_LEVEL":          "log.level",
	"GWORKSPACE_LOG_FORMAT":         "log.format",
	"METRICS_ENABLED":               "metrics.enabled",
	"METRICS_ADDR":                  "metrics.addr",
	"INSTRUMENTATION_ENABLED":       "instrumentation.enabled",
	"OTEL_SERVICE_NAME":             "instrumentation.service_name",
	"OTEL_SERVICE_INSTANCE_ID":      "instrumentation.service_instance_id",
	"METRICS_EXPORTER":              "instrumentation.metrics_exporter",
	"TRACING_EXPORTER":              "instrumentation.tracing_exporter",
	"OTEL_EXPORTER_OTLP_ENDPOINT":   "instrumentation.otlp_endpoint",
	"OTEL_EXPORTER_OTLP_INSECURE":   "instrumentation.otlp_insecure",
	"OTEL_TRACES_SAMPLER_ARG":       "instrumentation.trace_sampling_rate",
	"METRICS_DETAILED_LABELS":       "instrumentation.detailed_labels",
	"AUDIT_LOGGING_ENABLED":         "instrumentation.audit.enabled",
	"AUDIT_LOGGING_INCLUDE_PII":     "instrumentation.audit.include_pii",
}

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"http.cors_origins": true,
	"google.scopes":     true,
}

// Options tune Load.
type Options struct {
	// File is an optional YAML file. Empty means none.
	File string
	// Environ replaces os.Environ, for tests.
	Environ func() []string
}

// Load builds the configuration and validates it. Missing OAuth client
// credentials are a configuration error.
func Load(opts Options) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, apperrors.Wrap(apperrors.KindConfiguration, err, "failed to read config file "+opts.File)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: transformEnv,
		EnvironFunc:   opts.Environ,
	}), nil); err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfiguration, err, "failed to read environment")
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfiguration, err, "invalid configuration")
	}

	cfg.ProjectRoot = expandHome(cfg.ProjectRoot)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func transformEnv(k, v string) (string, any) {
	key, ok := envKeys[k]
	if !ok {
		return "", nil
	}
	if listKeys[key] {
		var out []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return key, out
	}
	return key, v
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and the instrumentation settings.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.Configuration("invalid configuration: %s", describe(verrs[0]))
		}
		return apperrors.Wrap(apperrors.KindConfiguration, err, "invalid configuration")
	}
	if cfg.Instrumentation.Enabled {
		if err := cfg.Instrumentation.Validate(); err != nil {
			return apperrors.Wrap(apperrors.KindConfiguration, err, err.Error())
		}
	}
	return nil
}

// describe names the offending setting by its environment variable when
// it has one.
func describe(fe validator.FieldError) string {
	switch fe.StructNamespace() {
	case "Config.Google.ClientID":
		return "GOOGLE_CLIENT_ID is required"
	case "Config.Google.ClientSecret":
		return "GOOGLE_CLIENT_SECRET is required"
	case "Config.Google.RedirectURI":
		return "GOOGLE_REDIRECT_URI must be a URL"
	case "Config.ProjectRoot":
		return "GOOGLE_WORKSPACE_PROJECT_ROOT is required"
	}
	return fe.Namespace() + " failed " + fe.Tag()
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
