package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	"github.com/pkg/errors"
)

// EmailMessage is an outgoing message.
type EmailMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

// Validate checks the fields Gmail needs to accept the message.
func (m *EmailMessage) Validate() error {
	if len(m.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	if m.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

// Build renders the message in RFC 2822 form.
func (m *EmailMessage) Build() string {
	var b strings.Builder

	writeHeader(&b, "To", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		writeHeader(&b, "Cc", strings.Join(m.Cc, ", "))
	}
	if len(m.Bcc) > 0 {
		writeHeader(&b, "Bcc", strings.Join(m.Bcc, ", "))
	}
	writeHeader(&b, "Subject", encodeRFC2047(m.Subject))

	contentType := "text/plain"
	if m.IsHTML {
		contentType = "text/html"
	}
	writeHeader(&b, "Content-Type", contentType+`; charset="UTF-8"`)
	writeHeader(&b, "MIME-Version", "1.0")
	b.WriteString("\r\n")
	b.WriteString(m.Body)

	return b.String()
}

// Raw validates the message and returns it base64url encoded, ready for
// the Raw field of a Gmail message.
func (m *EmailMessage) Raw() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString([]byte(m.Build())), nil
}

func writeHeader(b *strings.Builder, name, value string) {
	// Header injection: a value must stay on its own line.
	value = strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

// encodeRFC2047 encodes non-ASCII header text, leaving ASCII untouched.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
