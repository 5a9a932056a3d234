// Package apperr classifies application errors for transport layers.
package apperr

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrConflict = errors.New("conflict")
)

// Kind returns a stable machine-readable name for err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrInvalid):
		return "invalid"

	case errors.Is(err, ErrConflict):
		return "conflict"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest

	case errors.Is(err, ErrConflict):
		return http.StatusConflict

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout

	default:
		return http.StatusInternalServerError
	}
}

// Message returns text safe to show to a client. Internal errors are not
// echoed back.
func Message(err error) string {
	if Kind(err) == "internal" {
		return "internal error"
	}
	return err.Error()
}
