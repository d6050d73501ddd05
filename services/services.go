package services

import (
	"context"

	"github.com/samber/mo"

	"teamspace/models"
)

// AuthService defines the account provisioning and credential verification operations
type AuthService interface {
	// LoginOrCreateAccount is an idempotent upsert keyed on email: an
	// existing user is returned unchanged, otherwise the full record set
	// (user, account, workspace, owner member, current-workspace pointer)
	// is created inside one transaction.
	LoginOrCreateAccount(ctx context.Context, req models.ExternalAccountRequest) (*models.User, error)

	// RegisterUser is a strict create: a duplicate email fails with a
	// validation error. On success it runs the same provisioning sequence
	// as LoginOrCreateAccount and returns only the new identifiers.
	RegisterUser(ctx context.Context, req models.RegisterUserRequest) (*models.RegisterUserResult, error)

	// VerifyUser checks local credentials and returns the user with the
	// password hash stripped.
	VerifyUser(ctx context.Context, req models.VerifyUserRequest) (*models.User, error)
}

// UsersService defines the interface for user-related operations
type UsersService interface {
	GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error)
	GetUserByEmail(ctx context.Context, email string) (mo.Option[*models.User], error)
	SetCurrentWorkspace(ctx context.Context, userID, workspaceID string) (*models.User, error)
}

// WorkspacesService defines the interface for workspace and member operations
type WorkspacesService interface {
	CreateWorkspace(ctx context.Context, ownerID, name, description string) (*models.Workspace, error)
	GetWorkspacesForUser(ctx context.Context, userID string) ([]*models.Workspace, error)
	GetWorkspaceByID(ctx context.Context, userID, workspaceID string) (*models.Workspace, error)
	GetWorkspaceMembers(ctx context.Context, userID, workspaceID string) ([]*models.WorkspaceMember, error)
	GetWorkspaceAnalytics(ctx context.Context, userID, workspaceID string) (*models.WorkspaceAnalytics, error)
	UpdateWorkspace(ctx context.Context, userID, workspaceID, name, description string) (*models.Workspace, error)
	DeleteWorkspace(ctx context.Context, userID, workspaceID string) error
	ChangeMemberRole(
		ctx context.Context,
		actorID, workspaceID, memberID string,
		roleName models.RoleName,
	) (*models.Member, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	// WithTransaction executes the provided function within a database transaction.
	// The function receives a context carrying the transaction; on error the
	// transaction is rolled back, otherwise committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Manual transaction management
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
