package core

import (
	"strings"

	"github.com/google/uuid"
)

// NewInviteCode generates the join code stamped on every workspace.
// Short, URL-safe, unique per workspace.
func NewInviteCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
