package models

import (
	"time"
)

type User struct {
	ID                 string    `db:"id"                   json:"id"`
	Email              string    `db:"email"                json:"email"`
	Name               string    `db:"name"                 json:"name"`
	ProfilePicture     *string   `db:"profile_picture"      json:"profile_picture"`
	PasswordHash       *string   `db:"password_hash"        json:"-"`
	CurrentWorkspaceID *string   `db:"current_workspace_id" json:"current_workspace_id"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"           json:"updated_at"`
}

// OmitPassword returns a copy of the user with the password hash stripped.
// Authentication results must never expose the stored hash.
func (u *User) OmitPassword() *User {
	sanitized := *u
	sanitized.PasswordHash = nil
	return &sanitized
}
