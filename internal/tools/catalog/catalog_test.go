package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_NoDuplicates(t *testing.T) {
	r, err := NewRegistry(nil, t.TempDir())
	require.NoError(t, err)

	var total int
	for _, c := range Capabilities(nil, t.TempDir()) {
		total += len(c.Tools())
	}
	assert.Len(t, r.Tools(), total)

	for _, name := range []string{
		"list_workspace_accounts",
		"search_workspace_emails",
		"list_workspace_calendar_events",
		"list_drive_files",
		"get_workspace_contacts",
		"create_workspace_document",
		"create_workspace_spreadsheet",
	} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, Capabilities(nil, t.TempDir())))

	out := buf.String()
	assert.Contains(t, out, "## gmail")
	assert.Contains(t, out, "### `send_workspace_email`")
	assert.Contains(t, out, "| `email` | string | yes |")
}
