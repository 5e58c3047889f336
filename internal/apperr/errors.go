package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error carries a stable machine-readable code plus context for the caller.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Meta    map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Conflict(code, message string, meta map[string]any) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message, Meta: meta}
}

func NotFound(code, message string, meta map[string]any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message, Meta: meta}
}

func Validation(code, message string, meta map[string]any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Meta: meta}
}

func Internal(code, message string, meta map[string]any) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: message, Meta: meta}
}

// Wrap attaches cause to e and returns e.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
