package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, detailed bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), detailed)
	require.NoError(t, err)
	return m, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			return sum.DataPoints
		}
	}
	return nil
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordToolInvocation(ctx, ToolInvocationRecord{
		Tool: "search_workspace_emails", Service: ServiceGmail, Status: StatusSuccess,
		Account: "a@x.com", Duration: 20 * time.Millisecond,
	})
	m.RecordToolInvocation(ctx, ToolInvocationRecord{
		Tool: "search_workspace_emails", Service: ServiceGmail, Status: StatusError,
		ErrorKind: "authorization", Account: "a@x.com", Duration: time.Millisecond,
	})

	points := collectSum(t, reader, "mcp_tool_invocations_total")
	require.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, int64(1), p.Value)
		_, hasUser := p.Attributes.Value(attribute.Key(attrUser))
		assert.False(t, hasUser, "account label must be off without detailed labels")
	}
}

func TestMetrics_DetailedLabelsHashAccount(t *testing.T) {
	m, reader := newTestMetrics(t, true)

	m.RecordToolInvocation(context.Background(), ToolInvocationRecord{
		Tool: "list_drive_files", Service: ServiceDrive, Status: StatusSuccess, Account: "a@x.com",
	})

	points := collectSum(t, reader, "mcp_tool_invocations_total")
	require.Len(t, points, 1)
	v, ok := points[0].Attributes.Value(attribute.Key(attrUser))
	require.True(t, ok)
	assert.NotContains(t, v.AsString(), "a@x.com")
}

func TestMetrics_OAuthCounters(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultFailure)
	m.RecordOAuthAuth(ctx, OAuthResultRejected)

	refresh := collectSum(t, reader, "oauth_token_refresh_total")
	total := int64(0)
	for _, p := range refresh {
		total += p.Value
	}
	assert.Equal(t, int64(3), total)
	assert.Len(t, collectSum(t, reader, "oauth_auth_total"), 1)
}

func TestMetrics_HTTPAndRPC(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "POST", "/api/gmail/search", 200, 5*time.Millisecond)
	m.RecordRPCMessage(ctx, "tools/list", StatusSuccess)

	assert.Len(t, collectSum(t, reader, "http_requests_total"), 1)
	assert.Len(t, collectSum(t, reader, "jsonrpc_messages_total"), 1)
}

func TestMetrics_ZeroValueAndNil(t *testing.T) {
	ctx := context.Background()

	var zero Metrics
	zero.RecordHTTPRequest(ctx, "GET", "/health", 200, time.Millisecond)
	zero.RecordToolInvocation(ctx, ToolInvocationRecord{Tool: "x"})

	var nilMetrics *Metrics
	nilMetrics.RecordOAuthAuth(ctx, OAuthResultSuccess)
	nilMetrics.RecordRPCMessage(ctx, "initialize", StatusSuccess)
}
