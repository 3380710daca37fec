package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("creating booking: %w", ErrConfigurationMissing)

	got := GetAppError(wrapped)
	assert.Same(t, ErrConfigurationMissing, got)
	assert.Equal(t, http.StatusPreconditionFailed, got.Code)

	plain := GetAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "Internal server error", plain.Message)
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("delivery_type", "The selected delivery type is invalid.")

	assert.True(t, IsValidation(err))
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "delivery_type", Message: "The selected delivery type is invalid."}}, err.Errors)
	assert.False(t, IsValidation(ErrNotFound))
}
