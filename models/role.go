package models

import (
	"github.com/lib/pq"
)

// RoleName is the name of a seeded permission bundle.
type RoleName string

const (
	RoleOwner  RoleName = "OWNER"
	RoleAdmin  RoleName = "ADMIN"
	RoleMember RoleName = "MEMBER"
)

// Permissions granted by roles. Seeded once by cmd/seed and read-only at runtime.
const (
	PermissionCreateWorkspace         = "CREATE_WORKSPACE"
	PermissionDeleteWorkspace         = "DELETE_WORKSPACE"
	PermissionEditWorkspace           = "EDIT_WORKSPACE"
	PermissionManageWorkspaceSettings = "MANAGE_WORKSPACE_SETTINGS"
	PermissionAddMember               = "ADD_MEMBER"
	PermissionChangeMemberRole        = "CHANGE_MEMBER_ROLE"
	PermissionRemoveMember            = "REMOVE_MEMBER"
	PermissionViewOnly                = "VIEW_ONLY"
)

type Role struct {
	ID          string         `db:"id"          json:"id"`
	Name        RoleName       `db:"name"        json:"name"`
	Permissions pq.StringArray `db:"permissions" json:"permissions"`
}

// RolePermissions maps each seeded role to its permission bundle.
var RolePermissions = map[RoleName][]string{
	RoleOwner: {
		PermissionCreateWorkspace,
		PermissionDeleteWorkspace,
		PermissionEditWorkspace,
		PermissionManageWorkspaceSettings,
		PermissionAddMember,
		PermissionChangeMemberRole,
		PermissionRemoveMember,
		PermissionViewOnly,
	},
	RoleAdmin: {
		PermissionEditWorkspace,
		PermissionManageWorkspaceSettings,
		PermissionAddMember,
		PermissionRemoveMember,
		PermissionViewOnly,
	},
	RoleMember: {
		PermissionViewOnly,
	},
}
