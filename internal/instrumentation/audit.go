package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/chaitanya2108/Google-Workspace/internal/logging"
)

// ToolInvocation is the audit record for one tool call.
type ToolInvocation struct {
	Tool      string
	Service   string
	Transport string
	Account   string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	ErrorKind string
	Error     string
	TraceID   string
}

// NewToolInvocation starts a record for tool at the current time.
func NewToolInvocation(tool, service, transport string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		Service:   service,
		Transport: transport,
		StartTime: time.Now(),
	}
}

// Finish stamps the duration and outcome.
func (ti *ToolInvocation) Finish(ctx context.Context, err error, kind string) {
	ti.Duration = time.Since(ti.StartTime)
	ti.TraceID = TraceID(ctx)
	ti.Success = err == nil
	if err != nil {
		ti.Error = err.Error()
		ti.ErrorKind = kind
	}
}

// Status returns "success" or "error".
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// AuditLogger writes one structured line per tool invocation.
type AuditLogger struct {
	logger *slog.Logger
	config AuditLoggingConfig
}

// NewAuditLogger returns an audit logger writing through logger.
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger.With(logging.Component("audit")), config: config}
}

// LogToolInvocation emits the audit line for ti. Failed invocations log at
// warn so they surface without enabling debug output.
func (a *AuditLogger) LogToolInvocation(ctx context.Context, ti *ToolInvocation) {
	if a == nil || !a.config.Enabled || ti == nil {
		return
	}

	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		logging.Service(ti.Service),
		slog.String("transport", ti.Transport),
		slog.Duration(logging.KeyDuration, ti.Duration),
		logging.Status(ti.Status()),
	}
	if ti.Account != "" {
		if a.config.IncludePII {
			attrs = append(attrs, slog.String(logging.KeyAccount, ti.Account))
		} else {
			attrs = append(attrs, logging.UserHash(ti.Account), logging.Domain(ti.Account))
		}
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}

	level := slog.LevelInfo
	if !ti.Success {
		level = slog.LevelWarn
		attrs = append(attrs, logging.ErrorKind(ti.ErrorKind), slog.String(logging.KeyError, ti.Error))
	}

	a.logger.LogAttrs(ctx, level, "tool_invocation", attrs...)
}
