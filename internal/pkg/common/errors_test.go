package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError(t *testing.T) {
	t.Parallel()

	wrapped := NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, errors.New("boom"))
	assert.Equal(t, "boom", wrapped.Error())

	bare := NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	assert.Equal(t, "resource not found", bare.Error())
	assert.Equal(t, http.StatusNotFound, bare.Status)
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("records must be an array")
	assert.Equal(t, "records must be an array", err.Error())
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(fmt.Errorf("load: %w", err)))
	assert.False(t, IsValidationError(errors.New("other")))
}
