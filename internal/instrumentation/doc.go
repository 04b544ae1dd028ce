// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for the workspace server.
//
// # Metrics
//
//   - http_requests_total, http_request_duration_seconds: HTTP API requests by method, route and status
//   - jsonrpc_messages_total: line-protocol messages by method and outcome
//   - mcp_tool_invocations_total, mcp_tool_duration_seconds: tool calls by tool, service, status and error kind
//   - oauth_auth_total: completed authorization attempts by result
//   - oauth_token_refresh_total: token refresh attempts by result
//
// # Configuration
//
// Environment variables, overridable through the config file:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: google-workspace-mcp)
//
// The stdout exporters write to stderr, since stdout carries the line
// protocol in stdio mode.
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
package instrumentation
