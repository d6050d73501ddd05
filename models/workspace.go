package models

import (
	"time"
)

type Workspace struct {
	ID          string    `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description"`
	OwnerID     string    `db:"owner_id"    json:"owner_id"`
	InviteCode  string    `db:"invite_code" json:"invite_code"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// WorkspaceAnalytics is the per-workspace usage summary returned by the
// analytics endpoint.
type WorkspaceAnalytics struct {
	TotalMembers   int            `json:"total_members"`
	MembersPerRole map[string]int `json:"members_per_role"`
}
