package util

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid code", ErrInvalidCode, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"already exists", ErrAlreadyExists, http.StatusBadRequest},
		{"already linked", ErrAlreadyLinked, http.StatusBadRequest},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"storage", ErrStorage, http.StatusInternalServerError},
		{"partial link", ErrPartialLink, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

func TestStatusForWrappedError(t *testing.T) {
	err := fmt.Errorf("%w: drug %q", ErrNotFound, "Aspirin")
	assert.Equal(t, http.StatusNotFound, StatusFor(err))
}

func TestResponses(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"data": "ok"}, SuccessResponse("ok"))
	assert.Equal(t, map[string]interface{}{"error": "boom"}, FailedResponse(fmt.Errorf("boom")))
}
