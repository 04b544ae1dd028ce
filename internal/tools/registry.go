package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
)

// Middleware wraps the handler of one operation.
type Middleware func(service, tool string, next HandlerFunc) HandlerFunc

// Registry routes operation names to the capability that owns them.
type Registry struct {
	caps       []Capability
	owner      map[string]Capability
	middleware []Middleware
}

// NewRegistry indexes caps by operation name. A name claimed twice is an
// error naming both claimants.
func NewRegistry(caps ...Capability) (*Registry, error) {
	r := &Registry{owner: make(map[string]Capability)}
	for _, c := range caps {
		for _, t := range c.Tools() {
			if prev, dup := r.owner[t.Name]; dup {
				return nil, fmt.Errorf("tool %q is provided by both %s and %s", t.Name, prev.Service(), c.Service())
			}
			r.owner[t.Name] = c
		}
		r.caps = append(r.caps, c)
	}
	return r, nil
}

// Use appends middleware. The first one added is the outermost.
func (r *Registry) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Tools returns every descriptor, grouped by capability in registration order.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.owner))
	for _, c := range r.caps {
		out = append(out, c.Tools()...)
	}
	return out
}

// Capabilities returns the registered capabilities.
func (r *Registry) Capabilities() []Capability {
	return append([]Capability(nil), r.caps...)
}

// Lookup returns the capability owning name.
func (r *Registry) Lookup(name string) (Capability, bool) {
	c, ok := r.owner[name]
	return c, ok
}

// Invoke runs name through the middleware chain. An unknown name is a
// protocol error returned as err; operation failures come back in the
// result.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (*Result, error) {
	c, ok := r.owner[name]
	if !ok {
		return nil, apperrors.Protocol("Unknown tool: %s", name)
	}

	h := func(ctx context.Context, args map[string]any) *Result {
		return c.Invoke(ctx, name, args)
	}
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](c.Service(), name, h)
	}

	if args == nil {
		args = map[string]any{}
	}
	return h(ctx, args), nil
}
