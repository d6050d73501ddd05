package core

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_ValidPrefix(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   string
		expected string
	}{
		{
			name:     "user prefix",
			prefix:   IDPrefixUser,
			expected: "u",
		},
		{
			name:     "workspace prefix",
			prefix:   IDPrefixWorkspace,
			expected: "ws",
		},
		{
			name:     "uppercase prefix gets lowercased",
			prefix:   "WS",
			expected: "ws",
		},
		{
			name:     "prefix with whitespace gets trimmed",
			prefix:   " mem ",
			expected: "mem",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := NewID(tc.prefix)

			parts := strings.SplitN(id, "_", 2)
			require.Len(t, parts, 2)
			assert.Equal(t, tc.expected, parts[0])

			_, err := ulid.Parse(parts[1])
			assert.NoError(t, err, "suffix should be a valid ULID")
		})
	}
}

func TestNewID_EmptyPrefixPanics(t *testing.T) {
	assert.Panics(t, func() { NewID("") })
	assert.Panics(t, func() { NewID("   ") })
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID(IDPrefixUser)
		require.False(t, seen[id], "generated duplicate ID: %s", id)
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(NewID(IDPrefixUser)))
	assert.True(t, IsValidID(NewID(IDPrefixWorkspace)))

	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("nounderscore"))
	assert.False(t, IsValidID("_01G0EZ1XTM37C5X11SQTDNCTM1"))
	assert.False(t, IsValidID("U_01G0EZ1XTM37C5X11SQTDNCTM1"), "uppercase prefix is invalid")
	assert.False(t, IsValidID("u_tooshort"))
	assert.False(t, IsValidID("u_01G0EZ1XTM37C5X11SQTDNCTILO"), "invalid base32 characters")
}
