package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
)

// Result is the outcome of one operation. Exactly one of Err or the
// Data/Message pair is meaningful.
type Result struct {
	// Data is the operation's output shape.
	Data any
	// Message replaces Data as the human-readable text when set.
	Message string
	// Err is set when the operation failed.
	Err *apperrors.Error
}

// Data returns a successful result carrying v.
func Data(v any) *Result {
	return &Result{Data: v}
}

// Text returns a successful result carrying only a message.
func Text(msg string) *Result {
	return &Result{Message: msg}
}

// Failure classifies err and returns it as a failed result.
func Failure(err error) *Result {
	e := apperrors.As(err)
	if e == nil {
		e = apperrors.New(apperrors.KindInternal, "unknown error")
	}
	return &Result{Err: e}
}

// Failed reports whether the operation failed.
func (r *Result) Failed() bool {
	return r != nil && r.Err != nil
}

// Render returns the text shown to protocol clients: the error message, the
// message, or the indented JSON of Data.
func (r *Result) Render() string {
	switch {
	case r == nil:
		return ""
	case r.Err != nil:
		return "Error: " + r.Err.Error()
	case r.Message != "":
		return r.Message
	}
	b, err := json.MarshalIndent(r.Data, "", "  ")
	if err != nil {
		return "Error: failed to encode result: " + err.Error()
	}
	return string(b)
}

// CallToolResult converts r into the MCP tool result. A failure is
// flagged isError rather than reported as a protocol error.
func (r *Result) CallToolResult() *mcp.CallToolResult {
	if r.Failed() {
		return mcp.NewToolResultError(r.Render())
	}
	return mcp.NewToolResultText(r.Render())
}
