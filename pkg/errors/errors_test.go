package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeBackendUnreachable, "backend query failed", cause)

	assert.Contains(t, err.Error(), "BACKEND_UNREACHABLE")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, stderrors.Is(err, cause))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "direct structured error",
			err:  New(ErrCodeDuplicateKey, "intent already registered"),
			want: ErrCodeDuplicateKey,
		},
		{
			name: "wrapped structured error",
			err:  fmt.Errorf("resolving: %w", New(ErrCodeNotFound, "no such intent")),
			want: ErrCodeNotFound,
		},
		{
			name: "plain error",
			err:  stderrors.New("boom"),
			want: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeMalformedResponse, "bad payload")
	assert.True(t, IsCode(err, ErrCodeMalformedResponse))
	assert.False(t, IsCode(err, ErrCodeBackendUnreachable))
	assert.False(t, IsCode(nil, ErrCodeMalformedResponse))
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeInvalidSpec, "missing selector", map[string]any{
		"service": "payments",
	})
	assert.Equal(t, "payments", err.Context["service"])
}
