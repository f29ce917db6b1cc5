package apperrors

import (
	"errors"
	"fmt"
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
			name:     "Validation error",
			err:      Validation("content is required"),
			expected: CodeValidation,
		},
		{
			name:     "Conflict error",
			err:      Conflict("arrival already recorded"),
			expected: CodeConflict,
		},
		{
			name:     "Wrapped storage error",
			err:      fmt.Errorf("submit report: %w", Storage("failed to insert report", errors.New("connection refused"))),
			expected: CodeStorage,
		},
		{
			name:     "Plain error defaults to internal",
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

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, HTTPStatus(CodeValidation))
	assert.Equal(t, 409, HTTPStatus(CodeConflict))
	assert.Equal(t, 404, HTTPStatus(CodeNotFound))
	assert.Equal(t, 401, HTTPStatus(CodeUnauthorized))
	assert.Equal(t, 403, HTTPStatus(CodeForbidden))
	assert.Equal(t, 500, HTTPStatus(CodeStorage))
	assert.Equal(t, 500, HTTPStatus(CodeInternal))
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := Storage("failed to update record", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to update record", MessageOf(err))
}

func TestMessageOf_UnclassifiedErrorIsGeneric(t *testing.T) {
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: secret detail")))
}
