package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOfficeError_Error verifies message formatting with and without a
// wrapped cause.
func TestOfficeError_Error(t *testing.T) {
	plain := NewError(KindNotFound, "document missing")
	assert.Equal(t, "document missing", plain.Error())

	wrapped := WrapError(KindIO, "copy failed", errors.New("disk full"))
	assert.Equal(t, "copy failed: disk full", wrapped.Error())
}

// TestOfficeError_Unwrap verifies errors.Is/errors.As work through the
// wrapping.
func TestOfficeError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapError(KindIO, "operation failed", cause)

	assert.True(t, errors.Is(err, cause))

	var oe *OfficeError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, KindIO, oe.Kind)
}

// TestIsKind verifies kind matching through wrapped error chains.
func TestIsKind(t *testing.T) {
	err := NewError(KindPackageOpen, "bad zip")
	assert.True(t, IsKind(err, KindPackageOpen))
	assert.False(t, IsKind(err, KindNotFound))

	// Matching must work through an outer fmt.Errorf wrap.
	outer := fmt.Errorf("context: %w", err)
	assert.True(t, IsKind(outer, KindPackageOpen))

	assert.False(t, IsKind(errors.New("plain"), KindIO))
	assert.False(t, IsKind(nil, KindIO))
}

// TestExitCodeFor verifies the error-kind-to-exit-code mapping the CLI
// relies on.
func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"invalid-argument", NewError(KindInvalidArgument, "x"), ExitInvalidArgument},
		{"not-found", NewError(KindNotFound, "x"), ExitNotFound},
		{"package-open", NewError(KindPackageOpen, "x"), ExitPackageOpen},
		{"part-not-found", NewError(KindPartNotFound, "x"), ExitPartNotFound},
		{"io", NewError(KindIO, "x"), ExitIO},
		{"cancelled", NewError(KindCancelled, "x"), ExitUserCancelled},
		{"plain error", errors.New("x"), ExitGeneralError},
		{"wrapped", fmt.Errorf("outer: %w", NewError(KindNotFound, "x")), ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeFor(tt.err))
		})
	}
}
