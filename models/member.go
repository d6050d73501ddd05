package models

import (
	"time"
)

// Member binds a user to a workspace with a role. A workspace owner always
// has exactly one member row carrying the OWNER role.
type Member struct {
	ID          string    `db:"id"           json:"id"`
	UserID      string    `db:"user_id"      json:"user_id"`
	WorkspaceID string    `db:"workspace_id" json:"workspace_id"`
	RoleID      string    `db:"role_id"      json:"role_id"`
	JoinedAt    time.Time `db:"joined_at"    json:"joined_at"`
}

// WorkspaceMember is a member row joined with its user and role, as served
// by the workspace members endpoint.
type WorkspaceMember struct {
	ID             string    `db:"id"              json:"id"`
	UserID         string    `db:"user_id"         json:"user_id"`
	WorkspaceID    string    `db:"workspace_id"    json:"workspace_id"`
	UserName       string    `db:"user_name"       json:"user_name"`
	UserEmail      string    `db:"user_email"      json:"user_email"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture"`
	RoleName       RoleName  `db:"role_name"       json:"role_name"`
	JoinedAt       time.Time `db:"joined_at"       json:"joined_at"`
}
