package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
)

func TestNewMetricsServer(t *testing.T) {
	tests := []struct {
		name        string
		config      MetricsServerConfig
		wantAddr    string
		errContains string
	}{
		{
			name:     "valid config",
			config:   MetricsServerConfig{Addr: ":9191", Provider: createTestProvider(t)},
			wantAddr: ":9191",
		},
		{
			name:     "default addr",
			config:   MetricsServerConfig{Provider: createTestProvider(t)},
			wantAddr: DefaultMetricsAddr,
		},
		{
			name:        "nil provider",
			config:      MetricsServerConfig{Addr: ":9090"},
			errContains: "instrumentation provider is required",
		},
		{
			name:        "disabled provider",
			config:      MetricsServerConfig{Addr: ":9090", Provider: createDisabledProvider(t)},
			errContains: "instrumentation provider is not enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewMetricsServer(tt.config)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, srv.Addr())
		})
	}
}

func TestMetricsServer_ServesGatherer(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "gworkspace_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(3)

	srv, err := NewMetricsServer(MetricsServerConfig{Provider: createTestProvider(t), Gatherer: reg})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gworkspace_test_total 3")
}

func TestMetricsServer_StartAndShutdown(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{Addr: "127.0.0.1:0", Provider: createTestProvider(t)})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	require.Eventually(t, func() bool { return srv.Addr() != "127.0.0.1:0" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestMetricsServer_ShutdownWithoutStart(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{Provider: createTestProvider(t)})
	require.NoError(t, err)
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func createTestProvider(t *testing.T) *instrumentation.Provider {
	t.Helper()
	ctx := context.Background()
	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: instrumentation.ExporterPrometheus,
		TracingExporter: instrumentation.ExporterNone,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func createDisabledProvider(t *testing.T) *instrumentation.Provider {
	t.Helper()
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName: "test-service",
		Enabled:     false,
	})
	require.NoError(t, err)
	return provider
}
