package util

import (
	"errors"
	"net/http"
)

// Failure taxonomy. Services wrap these with fmt.Errorf("%w: ...") and
// controllers map them back to HTTP statuses with StatusFor.
var (
	ErrUnauthenticated = errors.New("please authenticate")
	ErrForbidden       = errors.New("unauthorized user")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrAlreadyLinked   = errors.New("already linked")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrStorage         = errors.New("storage failure")
	ErrPartialLink     = errors.New("partial link failure, retry the operation")
)

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCode):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrAlreadyLinked), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
