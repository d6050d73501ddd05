package api

import (
	"time"

	"teamspace/models"
)

// UserModel represents the user data returned by the API.
type UserModel struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	ProfilePicture     *string   `json:"profile_picture,omitempty"`
	CurrentWorkspaceID *string   `json:"current_workspace_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// WorkspaceModel represents the workspace data returned by the API.
type WorkspaceModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	InviteCode  string    `json:"invite_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MemberModel represents a bare membership record returned by the API.
type MemberModel struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	RoleID      string    `json:"role_id"`
	JoinedAt    time.Time `json:"joined_at"`
}

// WorkspaceMemberModel represents a workspace member joined with user and
// role details.
type WorkspaceMemberModel struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserName       string          `json:"user_name"`
	UserEmail      string          `json:"user_email"`
	ProfilePicture *string         `json:"profile_picture,omitempty"`
	RoleName       models.RoleName `json:"role_name"`
	JoinedAt       time.Time       `json:"joined_at"`
}
