package instrumentation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	tests := []struct {
		name        string
		config      AuditLoggingConfig
		err         error
		wantEmpty   bool
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:        "success without PII",
			config:      AuditLoggingConfig{Enabled: true},
			wantContain: []string{"tool_invocation", "tool=list_drive_files", "status=success", "user_hash=user:", "user_domain=x.com"},
			wantAbsent:  []string{"a@x.com"},
		},
		{
			name:        "failure logs kind",
			config:      AuditLoggingConfig{Enabled: true},
			err:         errors.New("Account not authenticated"),
			wantContain: []string{"level=WARN", "status=error", "error_kind=authorization"},
		},
		{
			name:        "PII included on request",
			config:      AuditLoggingConfig{Enabled: true, IncludePII: true},
			wantContain: []string{"account=a@x.com"},
		},
		{
			name:      "disabled",
			config:    AuditLoggingConfig{Enabled: false},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			audit := NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil)), tt.config)

			ti := NewToolInvocation("list_drive_files", ServiceDrive, "stdio")
			ti.Account = "a@x.com"
			kind := ""
			if tt.err != nil {
				kind = "authorization"
			}
			ti.Finish(context.Background(), tt.err, kind)
			audit.LogToolInvocation(context.Background(), ti)

			out := buf.String()
			if tt.wantEmpty {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			for _, s := range tt.wantContain {
				if !strings.Contains(out, s) {
					t.Errorf("output %q missing %q", out, s)
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(out, s) {
					t.Errorf("output %q must not contain %q", out, s)
				}
			}
		})
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation("t", ServiceGmail, "http")
	ti.Finish(context.Background(), nil, "")
	if ti.Status() != StatusSuccess {
		t.Errorf("Status() = %q", ti.Status())
	}

	ti.Finish(context.Background(), errors.New("x"), "upstream")
	if ti.Status() != StatusError || ti.ErrorKind != "upstream" {
		t.Errorf("Status() = %q kind = %q", ti.Status(), ti.ErrorKind)
	}
}

func TestAuditLogger_Nil(t *testing.T) {
	var a *AuditLogger
	a.LogToolInvocation(context.Background(), NewToolInvocation("t", "", ""))
}
