package instrumentation

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	for _, key := range []string{"OTEL_SERVICE_NAME", "INSTRUMENTATION_ENABLED", "METRICS_EXPORTER", "TRACING_EXPORTER", "OTEL_TRACES_SAMPLER_ARG"} {
		t.Setenv(key, "")
	}

	config := DefaultConfig()

	if config.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, DefaultServiceName)
	}
	if !config.Enabled {
		t.Error("expected Enabled to be true by default")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("MetricsExporter = %q, want prometheus", config.MetricsExporter)
	}
	if config.TracingExporter != ExporterNone {
		t.Errorf("TracingExporter = %q, want none", config.TracingExporter)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("TraceSamplingRate = %f, want 0.1", config.TraceSamplingRate)
	}
	if !config.AuditLogging.Enabled || config.AuditLogging.IncludePII {
		t.Errorf("AuditLogging = %+v, want enabled without PII", config.AuditLogging)
	}
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "test-service")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")
	t.Setenv("METRICS_DETAILED_LABELS", "not-a-bool")

	config := DefaultConfig()

	if config.ServiceName != "test-service" {
		t.Errorf("ServiceName = %q", config.ServiceName)
	}
	if config.Enabled {
		t.Error("expected Enabled to be false")
	}
	if config.MetricsExporter != ExporterStdout {
		t.Errorf("MetricsExporter = %q", config.MetricsExporter)
	}
	if config.TraceSamplingRate != 0.5 {
		t.Errorf("TraceSamplingRate = %f", config.TraceSamplingRate)
	}
	if config.DetailedLabels {
		t.Error("an unparsable bool should fall back to the default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "defaults", config: Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone}},
		{name: "empty exporters", config: Config{}},
		{name: "sampling too high", config: Config{TraceSamplingRate: 1.5}, wantErr: true},
		{name: "sampling negative", config: Config{TraceSamplingRate: -0.1}, wantErr: true},
		{name: "unknown metrics exporter", config: Config{MetricsExporter: "statsd"}, wantErr: true},
		{name: "unknown tracing exporter", config: Config{TracingExporter: "jaeger"}, wantErr: true},
		{name: "otlp without endpoint", config: Config{TracingExporter: ExporterOTLP}, wantErr: true},
		{name: "otlp with endpoint", config: Config{MetricsExporter: ExporterOTLP, OTLPEndpoint: "localhost:4318"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
