package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

// TracerName is the tracer used for every span this module starts.
const TracerName = "github.com/chaitanya2108/Google-Workspace"

// Span attribute keys.
const (
	SpanAttrTool      = "mcp.tool"
	SpanAttrService   = "google.service"
	SpanAttrTransport = "mcp.transport"
	SpanAttrUserHash  = "mcp.user_hash"
	SpanAttrErrorKind = "mcp.error_kind"
	SpanAttrRPCMethod = "rpc.method"
)

// StartToolSpan starts a server span for one tool invocation. The account is
// recorded hashed.
func StartToolSpan(ctx context.Context, tool, service, transport, account string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(SpanAttrTool, tool),
		attribute.String(SpanAttrService, service),
	}
	if transport != "" {
		attrs = append(attrs, attribute.String(SpanAttrTransport, transport))
	}
	if account != "" {
		attrs = append(attrs, attribute.String(SpanAttrUserHash, logging.AnonymizeEmail(account)))
	}

	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, "tool."+tool,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartRPCSpan starts a span for one line-protocol message.
func StartRPCSpan(ctx context.Context, method string) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, "jsonrpc."+method,
		trace.WithAttributes(attribute.String(SpanAttrRPCMethod, method)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// SetSpanError records err on span and marks it failed.
func SetSpanError(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	if kind != "" {
		span.SetAttributes(attribute.String(SpanAttrErrorKind, kind))
	}
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// TraceID returns the trace id in ctx, or "" when there is no valid span.
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
