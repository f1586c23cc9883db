// Package apperr holds the error kinds shared by every feature package.
// Services wrap one of the sentinels below with %w and handlers map them to
// HTTP responses through Status and Message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrGeneration        = errors.New("training plan generation failed")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)
	ErrNotAuthorized     = errors.New("not authorized")
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("unauthenticated")
)

// userError keeps the message meant for clients apart from the wrapped kind.
type userError struct {
	kind error
	msg  string
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.kind }

func Validationf(format string, args ...any) error {
	return &userError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &userError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func InvalidTransition(from, to string) error {
	return &userError{
		kind: ErrInvalidTransition,
		msg:  fmt.Sprintf("cannot move goal from %s to %s", from, to),
	}
}

// Generation wraps a collaborator or parsing failure. The cause is kept for
// logs; clients only ever see the generic message.
func Generation(cause error) error {
	return fmt.Errorf("%w: %w", ErrGeneration, cause)
}

func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Message(err error) string {
	var ue *userError
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		if errors.As(err, &ue) {
			return ue.msg
		}
		return err.Error()
	case errors.Is(err, ErrGeneration):
		return ErrGeneration.Error()
	case errors.Is(err, ErrUnauthenticated):
		return "unauthorized"
	case errors.Is(err, ErrNotAuthorized):
		return ErrNotAuthorized.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	default:
		return "internal server error"
	}
}
