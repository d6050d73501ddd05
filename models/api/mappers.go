package api

import "teamspace/models"

// DomainUserToAPIUser converts a domain User model to an API UserModel.
// The password hash never crosses this boundary.
func DomainUserToAPIUser(domainUser *models.User) *UserModel {
	if domainUser == nil {
		return nil
	}

	return &UserModel{
		ID:                 domainUser.ID,
		Email:              domainUser.Email,
		Name:               domainUser.Name,
		ProfilePicture:     domainUser.ProfilePicture,
		CurrentWorkspaceID: domainUser.CurrentWorkspaceID,
		CreatedAt:          domainUser.CreatedAt,
		UpdatedAt:          domainUser.UpdatedAt,
	}
}

// DomainWorkspaceToAPIWorkspace converts a domain Workspace model to an API WorkspaceModel.
func DomainWorkspaceToAPIWorkspace(domainWorkspace *models.Workspace) *WorkspaceModel {
	if domainWorkspace == nil {
		return nil
	}

	return &WorkspaceModel{
		ID:          domainWorkspace.ID,
		Name:        domainWorkspace.Name,
		Description: domainWorkspace.Description,
		OwnerID:     domainWorkspace.OwnerID,
		InviteCode:  domainWorkspace.InviteCode,
		CreatedAt:   domainWorkspace.CreatedAt,
		UpdatedAt:   domainWorkspace.UpdatedAt,
	}
}

// DomainWorkspacesToAPIWorkspaces converts a slice of domain workspaces.
func DomainWorkspacesToAPIWorkspaces(domainWorkspaces []*models.Workspace) []*WorkspaceModel {
	apiWorkspaces := make([]*WorkspaceModel, 0, len(domainWorkspaces))
	for _, ws := range domainWorkspaces {
		apiWorkspaces = append(apiWorkspaces, DomainWorkspaceToAPIWorkspace(ws))
	}
	return apiWorkspaces
}

// DomainMemberToAPIMember converts a bare membership record.
func DomainMemberToAPIMember(domainMember *models.Member) *MemberModel {
	if domainMember == nil {
		return nil
	}

	return &MemberModel{
		ID:          domainMember.ID,
		UserID:      domainMember.UserID,
		WorkspaceID: domainMember.WorkspaceID,
		RoleID:      domainMember.RoleID,
		JoinedAt:    domainMember.JoinedAt,
	}
}

// DomainWorkspaceMemberToAPIWorkspaceMember converts a joined workspace member row.
func DomainWorkspaceMemberToAPIWorkspaceMember(domainMember *models.WorkspaceMember) *WorkspaceMemberModel {
	if domainMember == nil {
		return nil
	}

	return &WorkspaceMemberModel{
		ID:             domainMember.ID,
		UserID:         domainMember.UserID,
		UserName:       domainMember.UserName,
		UserEmail:      domainMember.UserEmail,
		ProfilePicture: domainMember.ProfilePicture,
		RoleName:       domainMember.RoleName,
		JoinedAt:       domainMember.JoinedAt,
	}
}

// DomainWorkspaceMembersToAPIWorkspaceMembers converts a slice of joined
// workspace member rows.
func DomainWorkspaceMembersToAPIWorkspaceMembers(
	domainMembers []*models.WorkspaceMember,
) []*WorkspaceMemberModel {
	apiMembers := make([]*WorkspaceMemberModel, 0, len(domainMembers))
	for _, m := range domainMembers {
		apiMembers = append(apiMembers, DomainWorkspaceMemberToAPIWorkspaceMember(m))
	}
	return apiMembers
}
