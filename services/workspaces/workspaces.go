package workspaces

import (
	"context"
	"fmt"
	"log"

	"teamspace/core"
	"teamspace/db"
	"teamspace/models"
	"teamspace/services"
)

// WorkspacesService implements workspace and member management. Every
// read is membership-guarded; destructive operations are owner-only.
type WorkspacesService struct {
	usersRepo      *db.PostgresUsersRepository
	workspacesRepo *db.PostgresWorkspacesRepository
	rolesRepo      *db.PostgresRolesRepository
	membersRepo    *db.PostgresMembersRepository
	txManager      services.TransactionManager
}

func NewWorkspacesService(
	usersRepo *db.PostgresUsersRepository,
	workspacesRepo *db.PostgresWorkspacesRepository,
	rolesRepo *db.PostgresRolesRepository,
	membersRepo *db.PostgresMembersRepository,
	txManager services.TransactionManager,
) *WorkspacesService {
	return &WorkspacesService{
		usersRepo:      usersRepo,
		workspacesRepo: workspacesRepo,
		rolesRepo:      rolesRepo,
		membersRepo:    membersRepo,
		txManager:      txManager,
	}
}

// CreateWorkspace provisions an additional workspace for an existing
// user: workspace, owner member, current-workspace pointer - the same
// ownership invariant as first-login provisioning, in one transaction.
func (s *WorkspacesService) CreateWorkspace(
	ctx context.Context,
	ownerID, name, description string,
) (*models.Workspace, error) {
	log.Printf("📋 Starting to create workspace %q for user %s", name, ownerID)

	if name == "" {
		return nil, core.NewValidationError("workspace name cannot be empty")
	}

	var workspace *models.Workspace
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.workspacesRepo.CreateWorkspace(txCtx, name, description, ownerID, core.NewInviteCode())
		if err != nil {
			return err
		}

		maybeRole, err := s.rolesRepo.GetRoleByName(txCtx, models.RoleOwner)
		if err != nil {
			return err
		}
		if !maybeRole.IsPresent() {
			return core.NewNotFoundError("Owner role not found")
		}

		if _, err := s.membersRepo.CreateMember(txCtx, ownerID, created.ID, maybeRole.MustGet().ID); err != nil {
			return err
		}

		if err := s.usersRepo.UpdateCurrentWorkspace(txCtx, ownerID, created.ID); err != nil {
			return err
		}

		workspace = created
		return nil
	})
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	log.Printf("📋 Completed successfully - created workspace with ID: %s", workspace.ID)
	return workspace, nil
}

func (s *WorkspacesService) GetWorkspacesForUser(
	ctx context.Context,
	userID string,
) ([]*models.Workspace, error) {
	workspaces, err := s.workspacesRepo.GetWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspaces for user: %w", err)
	}
	return workspaces, nil
}

func (s *WorkspacesService) GetWorkspaceByID(
	ctx context.Context,
	userID, workspaceID string,
) (*models.Workspace, error) {
	if err := s.requireMembership(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	maybeWorkspace, err := s.workspacesRepo.GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if !maybeWorkspace.IsPresent() {
		return nil, core.NewNotFoundError("Workspace not found")
	}
	return maybeWorkspace.MustGet(), nil
}

func (s *WorkspacesService) GetWorkspaceMembers(
	ctx context.Context,
	userID, workspaceID string,
) ([]*models.WorkspaceMember, error) {
	if err := s.requireMembership(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	members, err := s.membersRepo.GetMembersByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}
	return members, nil
}

func (s *WorkspacesService) GetWorkspaceAnalytics(
	ctx context.Context,
	userID, workspaceID string,
) (*models.WorkspaceAnalytics, error) {
	if err := s.requireMembership(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	perRole, err := s.membersRepo.CountMembersByRole(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace analytics: %w", err)
	}

	total := 0
	for _, count := range perRole {
		total += count
	}

	return &models.WorkspaceAnalytics{TotalMembers: total, MembersPerRole: perRole}, nil
}

func (s *WorkspacesService) UpdateWorkspace(
	ctx context.Context,
	userID, workspaceID, name, description string,
) (*models.Workspace, error) {
	log.Printf("📋 Starting to update workspace %s", workspaceID)

	if name == "" {
		return nil, core.NewValidationError("workspace name cannot be empty")
	}
	if _, err := s.requireOwner(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	workspace, err := s.workspacesRepo.UpdateWorkspace(ctx, workspaceID, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	log.Printf("📋 Completed successfully - updated workspace %s", workspaceID)
	return workspace, nil
}

// DeleteWorkspace removes a workspace and everything hanging off it.
// Users left pointing at the deleted workspace get their pointer cleared,
// then the acting owner is repointed to their most recent remaining
// membership, all within one transaction.
func (s *WorkspacesService) DeleteWorkspace(ctx context.Context, userID, workspaceID string) error {
	log.Printf("📋 Starting to delete workspace %s", workspaceID)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.requireOwner(txCtx, userID, workspaceID); err != nil {
			return err
		}

		if err := s.usersRepo.ClearCurrentWorkspace(txCtx, workspaceID); err != nil {
			return err
		}

		if err := s.workspacesRepo.DeleteWorkspace(txCtx, workspaceID); err != nil {
			return err
		}

		// Repoint the owner at whichever workspace they joined last.
		memberships, err := s.membersRepo.GetMembershipsForUser(txCtx, userID)
		if err != nil {
			return err
		}
		for _, membership := range memberships {
			if membership.WorkspaceID != workspaceID {
				return s.usersRepo.UpdateCurrentWorkspace(txCtx, userID, membership.WorkspaceID)
			}
		}
		return nil
	})
	if err != nil {
		if core.IsKind(err, core.ErrorKindUnauthorized) || core.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	log.Printf("📋 Completed successfully - deleted workspace %s", workspaceID)
	return nil
}

// ChangeMemberRole reassigns a member's role. Owner-only, and the owner's
// own OWNER membership is immutable - a workspace always keeps exactly
// one OWNER member.
func (s *WorkspacesService) ChangeMemberRole(
	ctx context.Context,
	actorID, workspaceID, memberID string,
	roleName models.RoleName,
) (*models.Member, error) {
	log.Printf("📋 Starting to change role of member %s in workspace %s to %s", memberID, workspaceID, roleName)

	workspace, err := s.requireOwner(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}

	maybeMember, err := s.membersRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if !maybeMember.IsPresent() || maybeMember.MustGet().WorkspaceID != workspaceID {
		return nil, core.NewNotFoundError("Member not found in this workspace")
	}
	member := maybeMember.MustGet()

	if member.UserID == workspace.OwnerID {
		return nil, core.NewValidationError("cannot change the role of the workspace owner")
	}

	maybeRole, err := s.rolesRepo.GetRoleByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if !maybeRole.IsPresent() {
		return nil, core.NewNotFoundError("Role not found")
	}
	role := maybeRole.MustGet()

	if err := s.membersRepo.UpdateMemberRole(ctx, member.ID, role.ID); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	member.RoleID = role.ID

	log.Printf("📋 Completed successfully - member %s now has role %s", member.ID, roleName)
	return member, nil
}

func (s *WorkspacesService) requireMembership(ctx context.Context, userID, workspaceID string) error {
	maybeMember, err := s.membersRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !maybeMember.IsPresent() {
		return core.NewUnauthorizedError("user is not a member of this workspace")
	}
	return nil
}

func (s *WorkspacesService) requireOwner(
	ctx context.Context,
	userID, workspaceID string,
) (*models.Workspace, error) {
	maybeWorkspace, err := s.workspacesRepo.GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if !maybeWorkspace.IsPresent() {
		return nil, core.NewNotFoundError("Workspace not found")
	}
	workspace := maybeWorkspace.MustGet()

	if workspace.OwnerID != userID {
		return nil, core.NewUnauthorizedError("only the workspace owner can perform this action")
	}
	return workspace, nil
}
