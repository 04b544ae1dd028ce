package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

const (
	attrMethod    = "method"
	attrRoute     = "route"
	attrStatus    = "status"
	attrService   = "service"
	attrResult    = "result"
	attrTool      = "tool"
	attrKind      = "error_kind"
	attrTransport = "transport"
	attrUser      = "user_hash"
)

var (
	fastBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0}
	apiBuckets  = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
)

// Metrics records the server's observability metrics. The zero value is a
// valid recorder that records nothing.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	rpcMessagesTotal metric.Int64Counter

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	detailedLabels bool
}

// NewMetrics creates every instrument on meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error
	if m.httpRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP API requests"),
		metric.WithUnit("{request}")); err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}
	if m.httpRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(fastBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}
	if m.rpcMessagesTotal, err = meter.Int64Counter("jsonrpc_messages_total",
		metric.WithDescription("Total number of line-protocol messages handled, by method and outcome"),
		metric.WithUnit("{message}")); err != nil {
		return nil, fmt.Errorf("failed to create jsonrpc_messages_total counter: %w", err)
	}
	if m.toolInvocationsTotal, err = meter.Int64Counter("mcp_tool_invocations_total",
		metric.WithDescription("Total number of tool invocations"),
		metric.WithUnit("{invocation}")); err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}
	if m.toolDuration, err = meter.Float64Histogram("mcp_tool_duration_seconds",
		metric.WithDescription("Tool execution duration in seconds, upstream calls included"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(apiBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}
	if m.oauthAuthTotal, err = meter.Int64Counter("oauth_auth_total",
		metric.WithDescription("Total number of completed OAuth authorization attempts"),
		metric.WithUnit("{attempt}")); err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}
	if m.oauthTokenRefreshTotal, err = meter.Int64Counter("oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}")); err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records one HTTP API request. route is the matched route
// pattern, not the raw path.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrRoute, route),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRPCMessage records one line-protocol message. outcome is "success" or
// the JSON-RPC error code.
func (m *Metrics) RecordRPCMessage(ctx context.Context, method, outcome string) {
	if m == nil || m.rpcMessagesTotal == nil {
		return
	}
	m.rpcMessagesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrStatus, outcome),
	))
}

// ToolInvocationRecord describes a finished tool invocation for metrics.
type ToolInvocationRecord struct {
	Tool      string
	Service   string
	Transport string
	Account   string
	Status    string
	ErrorKind string
	Duration  time.Duration
}

// RecordToolInvocation records a tool invocation. The account label is only
// attached, hashed, when detailed labels are enabled.
func (m *Metrics) RecordToolInvocation(ctx context.Context, rec ToolInvocationRecord) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, rec.Tool),
		attribute.String(attrService, rec.Service),
		attribute.String(attrStatus, rec.Status),
	}
	if rec.Transport != "" {
		attrs = append(attrs, attribute.String(attrTransport, rec.Transport))
	}
	if rec.ErrorKind != "" {
		attrs = append(attrs, attribute.String(attrKind, rec.ErrorKind))
	}
	if m.detailedLabels && rec.Account != "" {
		attrs = append(attrs, attribute.String(attrUser, logging.AnonymizeEmail(rec.Account)))
	}

	opt := metric.WithAttributes(attrs...)
	m.toolInvocationsTotal.Add(ctx, 1, opt)
	m.toolDuration.Record(ctx, rec.Duration.Seconds(), opt)
}

// RecordOAuthAuth records a completed authorization attempt.
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m == nil || m.oauthAuthTotal == nil {
		return
	}
	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordOAuthTokenRefresh records a token refresh attempt.
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}
