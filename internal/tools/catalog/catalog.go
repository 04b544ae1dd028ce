// Package catalog assembles every capability module into one registry.
package catalog

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/google"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/account_tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/calendar_tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/contacts_tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/docs_tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/drive_tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/gmail_tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/sheets_tools"
)

// Auth is what the modules need from the auth manager.
type Auth interface {
	account_tools.Accounts
	common.Authenticator
}

var _ Auth = (*google.Manager)(nil)

// Capabilities returns the modules in catalog order.
func Capabilities(auth Auth, workspaceDir string) []tools.Capability {
	return []tools.Capability{
		account_tools.New(auth),
		gmail_tools.New(auth),
		calendar_tools.New(auth),
		drive_tools.New(auth, workspaceDir),
		contacts_tools.New(auth),
		docs_tools.New(auth),
		sheets_tools.New(auth),
	}
}

// NewRegistry builds the registry over every module and installs mw.
func NewRegistry(auth Auth, workspaceDir string, mw ...tools.Middleware) (*tools.Registry, error) {
	r, err := tools.NewRegistry(Capabilities(auth, workspaceDir)...)
	if err != nil {
		return nil, err
	}
	r.Use(mw...)
	return r, nil
}

// WriteMarkdown renders the catalog grouped by service.
func WriteMarkdown(w io.Writer, caps []tools.Capability) error {
	var b strings.Builder
	b.WriteString("# Google Workspace tools\n")
	for _, c := range caps {
		fmt.Fprintf(&b, "\n## %s\n", c.Service())
		for _, t := range c.Tools() {
			fmt.Fprintf(&b, "\n### `%s`\n\n%s\n", t.Name, t.Description)
			writeParams(&b, t.InputSchema)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeParams(b *strings.Builder, schema mcp.ToolInputSchema) {
	if len(schema.Properties) == 0 {
		return
	}
	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("\n| Parameter | Type | Required | Description |\n|---|---|---|---|\n")
	for _, name := range names {
		prop, _ := schema.Properties[name].(map[string]any)
		typ, _ := prop["type"].(string)
		desc, _ := prop["description"].(string)
		req := ""
		if required[name] {
			req = "yes"
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", name, typ, req, strings.ReplaceAll(desc, "|", `\|`))
	}
}
