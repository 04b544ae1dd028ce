// Package jsonrpc serves the tool registry over newline-delimited JSON-RPC
// 2.0, one request per line, as spoken by MCP clients over stdio.
//
// Requests are handled strictly in order. Each response is written as a
// single line and flushed before the next request is read. Methods under
// notifications/ never produce output.
package jsonrpc
