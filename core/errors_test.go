package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Kinds(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		kind    ErrorKind
		checker func(error) bool
	}{
		{"not found", NewNotFoundError("Owner role not found"), ErrorKindNotFound, IsNotFoundError},
		{"validation", NewValidationError("Email already exists"), ErrorKindValidation, IsValidationError},
		{"unauthorized", NewUnauthorizedError("Invalid email or password"), ErrorKindUnauthorized, IsUnauthorizedError},
		{"integrity", NewIntegrityError("account references missing user"), ErrorKindIntegrity, IsIntegrityError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.checker(tc.err))
			assert.True(t, IsKind(tc.err, tc.kind))

			// Kind survives fmt.Errorf wrapping
			wrapped := fmt.Errorf("provisioning failed: %w", tc.err)
			assert.True(t, tc.checker(wrapped))

			// But does not match any other kind
			for _, other := range []ErrorKind{
				ErrorKindNotFound, ErrorKindValidation, ErrorKindUnauthorized, ErrorKindIntegrity,
			} {
				if other != tc.kind {
					assert.False(t, IsKind(tc.err, other))
				}
			}
		})
	}
}

func TestDomainError_Message(t *testing.T) {
	err := NewValidationError("Email already exists")
	assert.Equal(t, "Email already exists", err.Error())
}

func TestIsKind_PlainErrors(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("not found")), "plain errors carry no kind")
	assert.False(t, IsValidationError(errors.New("boom")))
}
