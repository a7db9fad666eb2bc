package apierr

import (
	"errors"
	"fmt"
	"net/http"

	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// Internal reports whether the error must be hidden from callers.
func (e *Error) Internal() bool { return e != nil && e.Status >= http.StatusInternalServerError }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps a service-layer error onto its HTTP status and code.
// Unrecognised errors become a generic 500.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, perr.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, perr.ErrInvalidStatus):
		return New(http.StatusBadRequest, "invalid_status", err)
	case errors.Is(err, perr.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, perr.ErrStorage):
		return New(http.StatusInternalServerError, "storage_error", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
