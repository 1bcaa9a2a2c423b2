// Package apperr classifies errors into the kinds the HTTP layer maps to status codes.
package apperr

import (
	"errors"
	"net/http"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindPayloadTooLarge
	KindUnsupportedMediaType
	KindTooManyRequests
	KindDatabase
	KindExternalService
)

var kindInfo = map[Kind]struct {
	code   string
	status int
}{
	KindInternal:             {"INTERNAL_ERROR", http.StatusInternalServerError},
	KindValidation:           {"VALIDATION_ERROR", http.StatusBadRequest},
	KindAuthentication:       {"AUTHENTICATION_ERROR", http.StatusUnauthorized},
	KindAuthorization:        {"AUTHORIZATION_ERROR", http.StatusForbidden},
	KindNotFound:             {"NOT_FOUND", http.StatusNotFound},
	KindConflict:             {"CONFLICT", http.StatusConflict},
	KindPayloadTooLarge:      {"PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge},
	KindUnsupportedMediaType: {"UNSUPPORTED_MEDIA_TYPE", http.StatusUnsupportedMediaType},
	KindTooManyRequests:      {"RATE_LIMITED", http.StatusTooManyRequests},
	KindDatabase:             {"DATABASE_ERROR", http.StatusInternalServerError},
	KindExternalService:      {"EXTERNAL_SERVICE_ERROR", http.StatusBadGateway},
}

func (k Kind) Code() string {
	return kindInfo[k].code
}

func (k Kind) HTTPStatus() int {
	return kindInfo[k].status
}

// Exposed reports whether the message of an error of this kind may be shown to the caller.
func (k Kind) Exposed() bool {
	switch k {
	case KindInternal, KindDatabase, KindExternalService:
		return false
	}
	return true
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a classified error. err may be nil.
func E(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) error     { return New(KindValidation, msg) }
func NotFound(msg string) error       { return New(KindNotFound, msg) }
func Conflict(msg string) error       { return New(KindConflict, msg) }
func Authentication(msg string) error { return New(KindAuthentication, msg) }
func Authorization(msg string) error  { return New(KindAuthorization, msg) }
func Database(err error) error        { return E(KindDatabase, "database error", err) }
func ExternalService(msg string, err error) error {
	return E(KindExternalService, msg, err)
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the message of the outermost classified error in the chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return http.StatusText(KindOf(err).HTTPStatus())
}
