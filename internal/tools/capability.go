package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
)

// HandlerFunc runs one operation with its decoded arguments.
type HandlerFunc func(ctx context.Context, args map[string]any) *Result

// Capability is a family of operations against one Google surface.
type Capability interface {
	// Service names the surface for logs and metrics.
	Service() string
	// Tools returns the descriptors of every operation, in a stable order.
	Tools() []mcp.Tool
	// Supports reports whether name is one of this capability's operations.
	Supports(name string) bool
	// Invoke runs name. It never panics on bad input and never returns nil.
	Invoke(ctx context.Context, name string, args map[string]any) *Result
}

// Set is a Capability assembled from descriptors and handlers.
type Set struct {
	service  string
	tools    []mcp.Tool
	handlers map[string]HandlerFunc
}

// NewSet returns an empty set for service.
func NewSet(service string) *Set {
	return &Set{service: service, handlers: make(map[string]HandlerFunc)}
}

// Add registers tool with its handler. A repeated name panics, since the
// catalog is fixed at build time.
func (s *Set) Add(tool mcp.Tool, h HandlerFunc) {
	if _, dup := s.handlers[tool.Name]; dup {
		panic(fmt.Sprintf("tool %q registered twice in %s", tool.Name, s.service))
	}
	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = h
}

func (s *Set) Service() string {
	return s.service
}

func (s *Set) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

func (s *Set) Supports(name string) bool {
	_, ok := s.handlers[name]
	return ok
}

func (s *Set) Invoke(ctx context.Context, name string, args map[string]any) *Result {
	h, ok := s.handlers[name]
	if !ok {
		return Failure(apperrors.Protocol("Unknown tool: %s", name))
	}
	if args == nil {
		args = map[string]any{}
	}
	if res := h(ctx, args); res != nil {
		return res
	}
	return Failure(apperrors.New(apperrors.KindInternal, "operation returned no result"))
}
