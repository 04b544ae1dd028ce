// Package server is the HTTP adapter. It exposes the operation registry
// as JSON routes under /api, completes the OAuth redirect on
// /oauth/callback, serves the MCP streamable transport on /mcp, and
// answers liveness and readiness probes.
//
// Every /api route binds the request into the argument map the operation
// takes, merges path parameters in, and invokes the shared registry.
// Failures are written as {error, kind} with the status mapped from the
// error kind.
//
// Prometheus metrics are served by a separate MetricsServer so that
// operational data stays off the application port.
package server
