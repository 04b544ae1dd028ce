package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: google-workspace-mcp)
	ServiceName string `koanf:"service_name"`

	// ServiceVersion is the version of the service
	ServiceVersion string `koanf:"-"`

	// ServiceInstanceID is the unique instance identifier (default: hostname)
	ServiceInstanceID string `koanf:"service_instance_id"`

	// Enabled determines if instrumentation is active (default: true)
	Enabled bool `koanf:"enabled"`

	// MetricsExporter is one of "prometheus", "otlp", "stdout" (default: "prometheus")
	MetricsExporter string `koanf:"metrics_exporter"`

	// TracingExporter is one of "otlp", "stdout", "none" (default: "none")
	TracingExporter string `koanf:"tracing_exporter"`

	// OTLPEndpoint is the OTLP collector endpoint without scheme, e.g. "localhost:4318"
	OTLPEndpoint string `koanf:"otlp_endpoint"`

	// OTLPInsecure switches OTLP export to plain HTTP. Local development only.
	OTLPInsecure bool `koanf:"otlp_insecure"`

	// TraceSamplingRate is the sampling rate for traces (0.0 to 1.0, default: 0.1)
	TraceSamplingRate float64 `koanf:"trace_sampling_rate"`

	// DetailedLabels adds the anonymised account to tool metrics.
	// Keep it off in production to bound label cardinality.
	DetailedLabels bool `koanf:"detailed_labels"`

	// AuditLogging configures the per-invocation audit trail.
	AuditLogging AuditLoggingConfig `koanf:"audit"`
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	// Enabled determines if audit logging is active (default: true)
	Enabled bool `koanf:"enabled"`

	// IncludePII writes the full account email instead of its hash.
	IncludePII bool `koanf:"include_pii"`
}

// DefaultConfig returns a Config with sensible defaults based on environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:       getEnvOrDefault("OTEL_SERVICE_NAME", DefaultServiceName),
		ServiceVersion:    "unknown",
		ServiceInstanceID: getEnvOrDefault("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:           getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   getEnvOrDefault("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   getEnvOrDefault("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      getEnvBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: getEnvFloatOrDefault("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    getEnvBoolOrDefault("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    getEnvBoolOrDefault("AUDIT_LOGGING_ENABLED", true),
			IncludePII: getEnvBoolOrDefault("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if (c.TracingExporter == ExporterOTLP || c.MetricsExporter == ExporterOTLP) && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using an OTLP exporter")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// Constants for metric label values.
const (
	DefaultServiceName = "google-workspace-mcp"

	StatusSuccess = "success"
	StatusError   = "error"

	OAuthResultSuccess  = "success"
	OAuthResultFailure  = "failure"
	OAuthResultRejected = "rejected"
	OAuthResultSkipped  = "skipped"

	// Capability surfaces
	ServiceAccount  = "account"
	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"
	ServiceDrive    = "drive"
	ServiceDocs     = "docs"
	ServiceSheets   = "sheets"
	ServiceContacts = "contacts"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	DefaultMetricInterval = 10 * time.Second
)
