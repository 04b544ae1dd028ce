package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	gmail "google.golang.org/api/gmail/v1"
)

func TestEmailMessage_Build(t *testing.T) {
	tests := []struct {
		name        string
		msg         EmailMessage
		wantHeaders []string
		absent      []string
		wantBody    string
	}{
		{
			name: "plain text",
			msg: EmailMessage{
				To:      []string{"b@x.com"},
				Subject: "Hello",
				Body:    "Hi there",
			},
			wantHeaders: []string{"To: b@x.com", "Subject: Hello", `Content-Type: text/plain; charset="UTF-8"`, "MIME-Version: 1.0"},
			absent:      []string{"Cc:", "Bcc:"},
			wantBody:    "Hi there",
		},
		{
			name: "html with cc and bcc",
			msg: EmailMessage{
				To:      []string{"b@x.com", "c@x.com"},
				Cc:      []string{"d@x.com"},
				Bcc:     []string{"e@x.com"},
				Subject: "Report",
				Body:    "<p>Done</p>",
				IsHTML:  true,
			},
			wantHeaders: []string{"To: b@x.com, c@x.com", "Cc: d@x.com", "Bcc: e@x.com", `Content-Type: text/html; charset="UTF-8"`},
			wantBody:    "<p>Done</p>",
		},
		{
			name: "header injection is flattened",
			msg: EmailMessage{
				To:      []string{"b@x.com"},
				Subject: "Hi\r\nBcc: evil@x.com",
				Body:    "x",
			},
			wantHeaders: []string{"Subject: Hi  Bcc: evil@x.com"},
			absent:      []string{"\r\nBcc: evil@x.com"},
			wantBody:    "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.msg.Build()
			head, body, ok := strings.Cut(out, "\r\n\r\n")
			if !ok {
				t.Fatalf("no header/body separator in %q", out)
			}
			for _, h := range tt.wantHeaders {
				if !strings.Contains(head, h) {
					t.Errorf("headers %q missing %q", head, h)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(head, a) {
					t.Errorf("headers %q must not contain %q", head, a)
				}
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestEmailMessage_Raw(t *testing.T) {
	msg := &EmailMessage{To: []string{"b@x.com"}, Subject: "Rückerstattung", Body: "ok"}
	raw, err := msg.Raw()
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}
	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("not base64url: %v", err)
	}
	if !strings.Contains(string(decoded), "Subject: =?UTF-8?b?") {
		t.Errorf("subject not RFC 2047 encoded: %q", decoded)
	}

	if _, err := (&EmailMessage{Subject: "x"}).Raw(); err == nil {
		t.Error("expected error without recipients")
	}
	if _, err := (&EmailMessage{To: []string{"b@x.com"}}).Raw(); err == nil {
		t.Error("expected error without subject")
	}
}

func TestEncodeRFC2047(t *testing.T) {
	tests := []struct {
		input     string
		wantASCII bool
	}{
		{"Simple Subject", true},
		{"", true},
		{"Rückerstattung €115 - Überweisung", false},
		{"こんにちは", false},
		{"Subject with emoji 🎉", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := encodeRFC2047(tt.input)
			if tt.wantASCII {
				if got != tt.input {
					t.Errorf("encodeRFC2047(%q) = %q, want unchanged", tt.input, got)
				}
				return
			}
			if !strings.HasPrefix(got, "=?UTF-8?") || !strings.HasSuffix(got, "?=") {
				t.Errorf("encodeRFC2047(%q) = %q, want encoded word", tt.input, got)
			}
		})
	}
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		Snippet:  "hello",
		Payload: &gmail.MessagePart{Headers: []*gmail.MessagePartHeader{
			{Name: "From", Value: "a@x.com"},
			{Name: "subject", Value: "Lower"},
			{Name: "Date", Value: "Mon, 1 Jan 2026 10:00:00 +0000"},
		}},
	}

	if got := HeaderValue(msg, "Subject"); got != "Lower" {
		t.Errorf("HeaderValue(Subject) = %q", got)
	}
	if got := HeaderValue(msg, "Cc"); got != "" {
		t.Errorf("HeaderValue(Cc) = %q", got)
	}
	if got := HeaderValue(&gmail.Message{}, "From"); got != "" {
		t.Errorf("nil payload gave %q", got)
	}

	s := Summarize(msg)
	if s.ID != "m1" || s.ThreadID != "t1" || s.From != "a@x.com" || s.To != "" || s.Subject != "Lower" {
		t.Errorf("Summarize() = %+v", s)
	}
}
