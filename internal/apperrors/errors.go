package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Kind classifies a failure for the transports.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindAuthorization Kind = "authorization"
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindUpstream      Kind = "upstream"
	KindProtocol      Kind = "protocol"
	KindInternal      Kind = "internal"
)

// Error is a classified failure. The message is safe to show to callers.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that keeps cause for logging and errors.Is.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{kind: kind, message: message, cause: pkgerrors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause != nil && e.message == "" {
		return e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the caller-facing message.
func (e *Error) Message() string {
	return e.Error()
}

// HTTPStatus maps the kind onto a response status code.
func (e *Error) HTTPStatus() int {
	switch e.kind {
	case KindValidation, KindProtocol:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Configuration reports missing or invalid startup configuration.
func Configuration(format string, args ...any) *Error {
	return Newf(KindConfiguration, format, args...)
}

// Validation reports a caller mistake detected before any upstream call.
func Validation(format string, args ...any) *Error {
	return Newf(KindValidation, format, args...)
}

// Authorization reports a missing or unusable credential.
func Authorization(format string, args ...any) *Error {
	return Newf(KindAuthorization, format, args...)
}

// NotFound reports a missing resource.
func NotFound(format string, args ...any) *Error {
	return Newf(KindNotFound, format, args...)
}

// Protocol reports a client-side usage mistake such as an unknown operation.
func Protocol(format string, args ...any) *Error {
	return Newf(KindProtocol, format, args...)
}

// Internal reports an unexpected failure inside this process.
func Internal(cause error, message string) *Error {
	return Wrap(KindInternal, cause, message)
}

// ErrAccountRequired is returned when no account identity is supplied.
var ErrAccountRequired = New(KindValidation, "Email is required")

// ErrNotAuthenticated is returned when no usable credential exists for the account.
var ErrNotAuthenticated = New(KindAuthorization, "Account not authenticated")

// KindOf returns the kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As converts any error into an *Error, classifying Google API and OAuth
// failures along the way. A nil error yields nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return FromGoogle(err)
}

// FromGoogle classifies a failure returned by a Google API call. The upstream
// message is passed through unchanged.
func FromGoogle(err error) *Error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = gerr.Error()
		}
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return Wrap(KindAuthorization, err, msg)
		case http.StatusNotFound:
			return Wrap(KindNotFound, err, msg)
		case http.StatusBadRequest:
			return Wrap(KindValidation, err, msg)
		default:
			return Wrap(KindUpstream, err, msg)
		}
	}

	var rerr *oauth2.RetrieveError
	if stderrors.As(err, &rerr) {
		msg := rerr.ErrorDescription
		if msg == "" {
			msg = rerr.Error()
		}
		return Wrap(KindAuthorization, err, msg)
	}

	return Wrap(KindUpstream, err, err.Error())
}
