package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("Booking"),
			expected: "NOT_FOUND: Booking not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("internal error", errors.New("connection refused")),
			expected: "INTERNAL_ERROR: internal error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	assert.Same(t, originalErr, errors.Unwrap(appErr))
	assert.ErrorIs(t, appErr, originalErr)
}

func TestConstructors_StatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("User"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Booking", "b-1"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("validation failed", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("Invalid date format"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("Unauthorized"), CodeUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflict("Username already exists"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("MongoDB"), CodeUnavailable, http.StatusServiceUnavailable},
		{"rate limited", RateLimited(), CodeRateLimited, http.StatusTooManyRequests},
		{"unsupported media type", UnsupportedMediaType(), CodeUnsupported, http.StatusUnsupportedMediaType},
		{"timeout", Timeout(), CodeTimeout, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "b-1")

	assert.Equal(t, "Booking not found", err.Message)
	assert.Equal(t, "b-1", err.Details["id"])
	assert.Equal(t, "Booking", err.Details["resource"])
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("Username already exists")
	assert.Same(t, appErr, AsAppError(appErr))

	wrapped := fmt.Errorf("register: %w", appErr)
	assert.Same(t, appErr, AsAppError(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.True(t, HasCode(wrapped, CodeConflict))
	assert.False(t, HasCode(wrapped, CodeNotFound))

	regularErr := errors.New("regular error")
	result := AsAppError(regularErr)
	assert.Equal(t, CodeInternal, result.Code)
	assert.Same(t, regularErr, result.Err)
	assert.False(t, IsAppError(regularErr))
}

func TestAppError_ToJSONHidesCause(t *testing.T) {
	err := Internal("An unexpected error occurred", errors.New("mongo: secret host unreachable"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(err.ToJSON(), &body))

	assert.Equal(t, CodeInternal, body["code"])
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.NotContains(t, string(err.ToJSON()), "secret host")
	assert.NotContains(t, body, "details")
}
