package users

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"teamspace/core"
	"teamspace/db"
	"teamspace/models"
)

type UsersService struct {
	usersRepo   *db.PostgresUsersRepository
	membersRepo *db.PostgresMembersRepository
}

func NewUsersService(
	usersRepo *db.PostgresUsersRepository,
	membersRepo *db.PostgresMembersRepository,
) *UsersService {
	return &UsersService{usersRepo: usersRepo, membersRepo: membersRepo}
}

func (s *UsersService) GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error) {
	if !core.IsValidID(id) {
		return mo.None[*models.User](), fmt.Errorf("user ID must be a valid prefixed ULID")
	}

	maybeUser, err := s.usersRepo.GetUserByID(ctx, id)
	if err != nil {
		return mo.None[*models.User](), fmt.Errorf("failed to get user by ID: %w", err)
	}
	return maybeUser, nil
}

func (s *UsersService) GetUserByEmail(ctx context.Context, email string) (mo.Option[*models.User], error) {
	if email == "" {
		return mo.None[*models.User](), fmt.Errorf("email cannot be empty")
	}

	maybeUser, err := s.usersRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return mo.None[*models.User](), fmt.Errorf("failed to get user by email: %w", err)
	}
	return maybeUser, nil
}

// SetCurrentWorkspace switches the workspace a user is "in". The user
// must be a member of the target workspace.
func (s *UsersService) SetCurrentWorkspace(
	ctx context.Context,
	userID, workspaceID string,
) (*models.User, error) {
	log.Printf("📋 Starting to set current workspace %s for user %s", workspaceID, userID)

	maybeMember, err := s.membersRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !maybeMember.IsPresent() {
		return nil, core.NewUnauthorizedError("user is not a member of this workspace")
	}

	if err := s.usersRepo.UpdateCurrentWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, fmt.Errorf("failed to update current workspace: %w", err)
	}

	maybeUser, err := s.usersRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	if !maybeUser.IsPresent() {
		return nil, core.NewNotFoundError("user not found")
	}

	log.Printf("📋 Completed successfully - user %s now in workspace %s", userID, workspaceID)
	return maybeUser.MustGet().OmitPassword(), nil
}
