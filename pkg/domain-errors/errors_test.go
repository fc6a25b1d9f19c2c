package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "coded error",
			err:      New(CodeConflict, "email already registered"),
			expected: CodeConflict,
		},
		{
			name:     "wrapped cause keeps outer code",
			err:      Wrap(errors.New("pq: duplicate key"), CodeConflict, "email already registered"),
			expected: CodeConflict,
		},
		{
			name:     "coded error behind fmt wrapping",
			err:      fmt.Errorf("submit: %w", New(CodeValidation, "email is required")),
			expected: CodeValidation,
		},
		{
			name:     "uncoded error defaults to internal",
			err:      errors.New("boom"),
			expected: CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeOf(tt.err))
		})
	}
}

func TestMessageOfNeverLeaksCause(t *testing.T) {
	cause := errors.New(`pq: insert into users failed: connection refused`)

	assert.Equal(t, "could not save registration", MessageOf(Wrap(cause, CodeInternal, "could not save registration")))
	assert.Equal(t, "internal error", MessageOf(cause))
}

func TestHasCode(t *testing.T) {
	err := Wrap(errors.New("bucket missing"), CodeUnavailable, "uploads temporarily unavailable")

	assert.True(t, HasCode(err, CodeUnavailable))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(nil, CodeInternal))
	assert.True(t, Is(err, CodeUnavailable))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(CodeUnauthorized))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(CodeConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, ToHTTPStatus(CodeUnprocessable))
	assert.Equal(t, http.StatusTooManyRequests, ToHTTPStatus(CodeRateLimited))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(CodeUnavailable))
	assert.Equal(t, http.StatusGatewayTimeout, ToHTTPStatus(CodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}
