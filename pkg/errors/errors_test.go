package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := New("SOME_CODE", "something broke", http.StatusBadRequest)
	assert.Equal(t, "something broke", err.Error())

	wrapped := err.WithInternal(errors.New("db down"))
	assert.Equal(t, "something broke: db down", wrapped.Error())
	// The original stays untouched.
	assert.Nil(t, err.Internal)
}

func TestWithInternalUnwrap(t *testing.T) {
	inner := errors.New("inner failure")
	err := ErrInternalServer.WithInternal(inner)
	assert.ErrorIs(t, err, inner)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := FromError(ErrNotFound)
	assert.Equal(t, ErrNotFound, appErr)

	wrapped := FromError(fmt.Errorf("loading: %w", ErrForbidden))
	assert.Equal(t, ErrForbidden.Code, wrapped.Code)

	generic := FromError(errors.New("boom"))
	require.NotNil(t, generic)
	assert.Equal(t, ErrInternalServer.Code, generic.Code)
	assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
}

func TestNewValidation(t *testing.T) {
	err := NewValidation("title is too short")
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "title is too short", err.Message)
}
