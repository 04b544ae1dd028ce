package tools

import "context"

type transportKey struct{}

// Transport names used in metrics and audit records.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
	TransportCLI   = "cli"
)

// WithTransport records which adapter is serving the call.
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey{}, transport)
}

// TransportFrom returns the adapter recorded by WithTransport, or "".
func TransportFrom(ctx context.Context) string {
	t, _ := ctx.Value(transportKey{}).(string)
	return t
}
