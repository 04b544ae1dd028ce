package common

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

func newAudit(buf *bytes.Buffer) *instrumentation.AuditLogger {
	return instrumentation.NewAuditLogger(
		slog.New(slog.NewTextHandler(buf, nil)),
		instrumentation.AuditLoggingConfig{Enabled: true},
	)
}

func TestInstrument_Success(t *testing.T) {
	var buf bytes.Buffer
	mw := Instrument(nil, newAudit(&buf), slog.New(slog.NewTextHandler(&buf, nil)))

	called := false
	h := mw("gmail", "search_workspace_emails", func(ctx context.Context, args map[string]any) *tools.Result {
		called = true
		assert.Equal(t, tools.TransportStdio, tools.TransportFrom(ctx))
		return tools.Data(map[string]int{"total": 1})
	})

	ctx := tools.WithTransport(context.Background(), tools.TransportStdio)
	res := h(ctx, map[string]any{"email": "a@x.com"})

	assert.True(t, called)
	require.False(t, res.Failed())
	out := buf.String()
	assert.Contains(t, out, "tool=search_workspace_emails")
	assert.Contains(t, out, "status=success")
	assert.Contains(t, out, "transport=stdio")
	assert.NotContains(t, out, "a@x.com")
}

func TestInstrument_Failure(t *testing.T) {
	var buf bytes.Buffer
	mw := Instrument(nil, newAudit(&buf), nil)

	h := mw("drive", "delete_drive_file", func(ctx context.Context, args map[string]any) *tools.Result {
		return tools.Failure(apperrors.NotFound("File not found"))
	})
	res := h(context.Background(), map[string]any{})

	require.True(t, res.Failed())
	assert.Equal(t, apperrors.KindNotFound, res.Err.Kind())
	assert.Contains(t, buf.String(), "error_kind=not_found")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestInstrument_RecoversPanic(t *testing.T) {
	var logs bytes.Buffer
	mw := Instrument(nil, nil, slog.New(slog.NewTextHandler(&logs, nil)))

	h := mw("sheets", "get_sheet_values", func(ctx context.Context, args map[string]any) *tools.Result {
		var m map[string]string
		m["boom"] = "x"
		return nil
	})

	var res *tools.Result
	require.NotPanics(t, func() {
		res = h(context.Background(), map[string]any{})
	})
	require.True(t, res.Failed())
	assert.Equal(t, apperrors.KindInternal, res.Err.Kind())
	assert.True(t, strings.HasPrefix(res.Render(), "Error: Internal error while running get_sheet_values"))
	assert.Contains(t, logs.String(), "tool panicked")
}

func TestInstrument_WithRegistryAndMetrics(t *testing.T) {
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{Enabled: false})
	require.NoError(t, err)

	set := tools.NewSet("account")
	set.Add(mcp.NewTool("list_workspace_accounts"), func(ctx context.Context, args map[string]any) *tools.Result {
		return tools.Data([]string{})
	})
	r, err := tools.NewRegistry(set)
	require.NoError(t, err)
	r.Use(Instrument(provider.Metrics(), provider.Audit(), nil))

	res, err := r.Invoke(context.Background(), "list_workspace_accounts", nil)
	require.NoError(t, err)
	assert.False(t, res.Failed())
}
