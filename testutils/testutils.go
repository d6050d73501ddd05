package testutils

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"teamspace/appctx"
	"teamspace/core"
	"teamspace/models"
)

// TestSchema is the schema repositories are constructed with in tests.
const TestSchema = "public"

// NewMockDB opens a sqlmock-backed sqlx handle. The mock records every
// expectation; callers should finish with mock.ExpectationsWereMet.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to open sqlmock database")

	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// QueryPattern builds a regexp matching any query that contains the given
// fragments in order, regardless of the whitespace between them.
func QueryPattern(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, fragment := range fragments {
		quoted[i] = regexp.QuoteMeta(fragment)
	}
	return "(?s)" + strings.Join(quoted, ".*")
}

// UniqueEmail returns an email address that will not collide across tests.
func UniqueEmail() string {
	return "user-" + uuid.New().String() + "@example.com"
}

// NewTestUser builds a user fixture with a fresh ID and unique email.
func NewTestUser() *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:        core.NewID(core.IDPrefixUser),
		Email:     UniqueEmail(),
		Name:      "Test User",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestWorkspace builds a workspace fixture owned by the given user.
func NewTestWorkspace(ownerID string) *models.Workspace {
	now := time.Now().UTC()
	return &models.Workspace{
		ID:          core.NewID(core.IDPrefixWorkspace),
		Name:        "My Workspace",
		Description: "Workspace created for Test User",
		OwnerID:     ownerID,
		InviteCode:  core.NewInviteCode(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestRole builds a role fixture with the seeded permission bundle.
func NewTestRole(name models.RoleName) *models.Role {
	return &models.Role{
		ID:          core.NewID(core.IDPrefixRole),
		Name:        name,
		Permissions: pq.StringArray(models.RolePermissions[name]),
	}
}

// NewTestAccount builds an account fixture linking the user to a provider.
func NewTestAccount(provider models.Provider, providerID, userID string) *models.Account {
	return &models.Account{
		ID:         core.NewID(core.IDPrefixAccount),
		Provider:   provider,
		ProviderID: providerID,
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewTestMember builds a member fixture binding a user to a workspace.
func NewTestMember(userID, workspaceID, roleID string) *models.Member {
	return &models.Member{
		ID:          core.NewID(core.IDPrefixMember),
		UserID:      userID,
		WorkspaceID: workspaceID,
		RoleID:      roleID,
		JoinedAt:    time.Now().UTC(),
	}
}

// UserRows builds a sqlmock result set shaped like the users column list.
func UserRows(users ...*models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "email", "name", "profile_picture", "password_hash",
		"current_workspace_id", "created_at", "updated_at",
	})
	for _, user := range users {
		rows.AddRow(
			user.ID, user.Email, user.Name, user.ProfilePicture,
			user.PasswordHash, user.CurrentWorkspaceID, user.CreatedAt, user.UpdatedAt)
	}
	return rows
}

// AccountRows builds a sqlmock result set shaped like the accounts column list.
func AccountRows(accounts ...*models.Account) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "provider", "provider_id", "user_id", "created_at"})
	for _, account := range accounts {
		rows.AddRow(account.ID, string(account.Provider), account.ProviderID, account.UserID, account.CreatedAt)
	}
	return rows
}

// WorkspaceRows builds a sqlmock result set shaped like the workspaces column list.
func WorkspaceRows(workspaces ...*models.Workspace) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "owner_id", "invite_code", "created_at", "updated_at",
	})
	for _, workspace := range workspaces {
		rows.AddRow(
			workspace.ID, workspace.Name, workspace.Description,
			workspace.OwnerID, workspace.InviteCode, workspace.CreatedAt, workspace.UpdatedAt)
	}
	return rows
}

// RoleRows builds a sqlmock result set shaped like the roles column list.
// Permissions are encoded in the Postgres array literal form pq expects.
func RoleRows(roles ...*models.Role) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "permissions"})
	for _, role := range roles {
		rows.AddRow(role.ID, string(role.Name), "{"+strings.Join(role.Permissions, ",")+"}")
	}
	return rows
}

// MemberRows builds a sqlmock result set shaped like the members column list.
func MemberRows(members ...*models.Member) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "workspace_id", "role_id", "joined_at"})
	for _, member := range members {
		rows.AddRow(member.ID, member.UserID, member.WorkspaceID, member.RoleID, member.JoinedAt)
	}
	return rows
}

// CreateTestContext returns a context carrying the given authenticated user.
func CreateTestContext(user *models.User) context.Context {
	return appctx.SetUser(context.Background(), user)
}
