package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"operation", Operation("refresh"), KeyOperation, "refresh"},
		{"service", Service("gmail"), KeyService, "gmail"},
		{"tool", Tool("search_workspace_emails"), KeyTool, "search_workspace_emails"},
		{"status", Status(StatusSuccess), KeyStatus, "success"},
		{"component", Component("credstore"), KeyComponent, "credstore"},
		{"request id", RequestID("r-1"), KeyRequestID, "r-1"},
		{"error kind", ErrorKind("validation"), KeyErrorKind, "validation"},
		{"domain", Domain("jane@example.com"), KeyDomain, "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError || attr.Value.String() != "boom" {
		t.Errorf("Err() = %v", attr)
	}

	if attr := Err(nil); attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty group", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	if got := AnonymizeEmail(""); got != "" {
		t.Errorf("AnonymizeEmail(\"\") = %q", got)
	}

	a := AnonymizeEmail("jane@example.com")
	if len(a) != 21 || !strings.HasPrefix(a, "user:") {
		t.Errorf("AnonymizeEmail() = %q, want user: + 16 hex chars", a)
	}
	if a != AnonymizeEmail("Jane@Example.com") {
		t.Error("hash should not depend on email case")
	}
	if a == AnonymizeEmail("other@example.com") {
		t.Error("different emails should hash differently")
	}
}

func TestWithAccountNeverLogsEmail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithAccount(logger, "jane@example.com").Info("loaded")

	out := buf.String()
	if strings.Contains(out, "jane@example.com") {
		t.Errorf("log output leaked the email: %s", out)
	}
	if !strings.Contains(out, KeyUserHash+"=user:") {
		t.Errorf("log output missing user hash: %s", out)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"ya29.a0AfH6SMB", "[token:14 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := SanitizeToken(tt.token); got != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.expected)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := map[string]string{
		"jane@example.com": "example.com",
		"invalid":          "",
		"":                 "",
		"a@b@c":            "",
	}

	for email, want := range tests {
		if got := ExtractDomain(email); got != want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", email, got, want)
		}
	}
}
