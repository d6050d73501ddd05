package core

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entity ID prefixes used across the persistence layer.
const (
	IDPrefixUser      = "u"
	IDPrefixAccount   = "acc"
	IDPrefixWorkspace = "ws"
	IDPrefixRole      = "role"
	IDPrefixMember    = "mem"
)

// NewID generates a new ULID with the given prefix.
// The format is: prefix_ULID
// Example: core.NewID("ws") returns "ws_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		panic("prefix cannot be empty")
	}

	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)

	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + id.String()
}

// IsValidID checks whether the given string is a prefixed ULID as produced
// by NewID: a lowercase alphanumeric prefix, an underscore, and a 26
// character base32 ULID.
func IsValidID(id string) bool {
	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		return false
	}

	prefix, ulidPart := parts[0], parts[1]
	if prefix == "" {
		return false
	}
	for _, r := range prefix {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	if len(ulidPart) != 26 {
		return false
	}
	_, err := ulid.Parse(ulidPart)
	return err == nil
}
