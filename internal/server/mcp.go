package server

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

const (
	mcpEndpointPath = "/mcp"
	mcpServerName   = "google-workspace-mcp"
)

// newMCPHandler exposes the registry through the MCP streamable HTTP
// transport. Each descriptor is registered with a handler that invokes the
// registry, so the catalog and its middleware are shared with /api.
func newMCPHandler(d Dispatcher, version string) http.Handler {
	srv := mcpserver.NewMCPServer(mcpServerName, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	for _, t := range d.Tools() {
		name := t.Name
		srv.AddTool(t, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			res, err := d.Invoke(tools.WithTransport(ctx, tools.TransportHTTP), name, req.GetArguments())
			if err != nil {
				return nil, err
			}
			return res.CallToolResult(), nil
		})
	}
	return mcpserver.NewStreamableHTTPServer(srv, mcpserver.WithEndpointPath(mcpEndpointPath))
}
