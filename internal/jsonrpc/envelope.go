package jsonrpc

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const jsonrpcVersion = "2.0"

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func parseError(msg string) *Error {
	return &Error{Code: mcp.PARSE_ERROR, Message: "Parse error: " + msg}
}

func methodNotFound(method string) *Error {
	return &Error{Code: mcp.METHOD_NOT_FOUND, Message: "Method not found: " + method}
}

func invalidParams(msg string) *Error {
	return &Error{Code: mcp.INVALID_PARAMS, Message: msg}
}

func internalError(msg string) *Error {
	return &Error{Code: mcp.INTERNAL_ERROR, Message: msg}
}

type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    map[string]any     `json:"capabilities"`
	ServerInfo      mcp.Implementation `json:"serverInfo"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}
