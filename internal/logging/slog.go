package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys shared by every component.
const (
	KeyOperation = "operation"
	KeyService   = "service"
	KeyAccount   = "account"
	KeyUserHash  = "user_hash"
	KeyDomain    = "user_domain"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyTool      = "tool"
	KeyComponent = "component"
	KeyRequestID = "request_id"
	KeyErrorKind = "error_kind"
)

// Outcome values for KeyStatus. instrumentation keeps its own copy since
// it imports this package.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithAccount scopes logger to an account without logging the address.
func WithAccount(logger *slog.Logger, account string) *slog.Logger {
	return logger.With(UserHash(account))
}

func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
func Service(svc string) slog.Attr { return slog.String(KeyService, svc) }
func Tool(name string) slog.Attr { return slog.String(KeyTool, name) }
func Status(status string) slog.Attr { return slog.String(KeyStatus, status) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func ErrorKind(kind string) slog.Attr { return slog.String(KeyErrorKind, kind) }
func Domain(email string) slog.Attr { return slog.String(KeyDomain, ExtractDomain(email)) }
func UserHash(email string) slog.Attr { return slog.String(KeyUserHash, AnonymizeEmail(email)) }

// Err is safe with a nil error: the empty group it returns is dropped by
// every slog handler.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail hashes an address case-insensitively so log lines for one
// account correlate without carrying the address.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.ToLower(email)))
	return "user:" + hex.EncodeToString(sum[:8])
}

// SanitizeToken reports only the length of a token.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// ExtractDomain returns the part after the single @, or "".
func ExtractDomain(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return ""
	}
	return domain
}
