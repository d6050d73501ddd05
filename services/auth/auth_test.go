package auth

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"teamspace/core"
	"teamspace/db"
	"teamspace/metrics"
	"teamspace/models"
	"teamspace/services/txmanager"
	"teamspace/testutils"
)

func newTestAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock := testutils.NewMockDB(t)
	service := NewAuthService(
		db.NewPostgresUsersRepository(conn, testutils.TestSchema),
		db.NewPostgresAccountsRepository(conn, testutils.TestSchema),
		db.NewPostgresWorkspacesRepository(conn, testutils.TestSchema),
		db.NewPostgresRolesRepository(conn, testutils.TestSchema),
		db.NewPostgresMembersRepository(conn, testutils.TestSchema),
		txmanager.NewTransactionManager(conn),
		metrics.NoopCollector{},
	)
	return service, mock
}

// expectProvisioningTail registers the queries provisionDefaults issues
// after the user row exists: account insert, workspace insert, owner role
// lookup, member insert, current-workspace update.
func expectProvisioningTail(
	mock sqlmock.Sqlmock,
	user *models.User,
	workspace *models.Workspace,
	ownerRole *models.Role,
	provider models.Provider,
) {
	account := testutils.NewTestAccount(provider, "provider-id", user.ID)
	member := testutils.NewTestMember(user.ID, workspace.ID, ownerRole.ID)

	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.accounts")).
		WillReturnRows(testutils.AccountRows(account))
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.workspaces")).
		WillReturnRows(testutils.WorkspaceRows(workspace))
	mock.ExpectQuery(testutils.QueryPattern("FROM public.roles", "WHERE name = $1")).
		WillReturnRows(testutils.RoleRows(ownerRole))
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.members")).
		WillReturnRows(testutils.MemberRows(member))
	mock.ExpectExec(testutils.QueryPattern("UPDATE public.users", "SET current_workspace_id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestLoginOrCreateAccount_NewUserProvisionsDefaults(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	workspace := testutils.NewTestWorkspace(user.ID)
	ownerRole := testutils.NewTestRole(models.RoleOwner)

	mock.ExpectBegin()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WithArgs(user.Email).
		WillReturnRows(testutils.UserRows())
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.users")).
		WillReturnRows(testutils.UserRows(user))
	expectProvisioningTail(mock, user, workspace, ownerRole, models.ProviderGoogle)
	mock.ExpectCommit()

	resolved, err := service.LoginOrCreateAccount(context.Background(), models.ExternalAccountRequest{
		Provider:    models.ProviderGoogle,
		ProviderID:  "google-sub-123",
		Email:       user.Email,
		DisplayName: user.Name,
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	require.NotNil(t, resolved.CurrentWorkspaceID)
	assert.Equal(t, workspace.ID, *resolved.CurrentWorkspaceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginOrCreateAccount_ExistingUserReturnedUnchanged(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	account := testutils.NewTestAccount(models.ProviderEmail, user.Email, user.ID)

	mock.ExpectBegin()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WithArgs(user.Email).
		WillReturnRows(testutils.UserRows(user))
	// Unlinked-provider inspection only; no writes for the new provider.
	mock.ExpectQuery(testutils.QueryPattern("FROM public.accounts", "WHERE user_id = $1")).
		WithArgs(user.ID).
		WillReturnRows(testutils.AccountRows(account))
	mock.ExpectCommit()

	resolved, err := service.LoginOrCreateAccount(context.Background(), models.ExternalAccountRequest{
		Provider:    models.ProviderGoogle,
		ProviderID:  "google-sub-123",
		Email:       user.Email,
		DisplayName: "Different Name",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Name, resolved.Name, "existing user attributes must not be overwritten")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginOrCreateAccount_MissingOwnerRoleRollsBack(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	workspace := testutils.NewTestWorkspace(user.ID)

	mock.ExpectBegin()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WillReturnRows(testutils.UserRows())
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.users")).
		WillReturnRows(testutils.UserRows(user))
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.accounts")).
		WillReturnRows(testutils.AccountRows(testutils.NewTestAccount(models.ProviderGoogle, "sub", user.ID)))
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.workspaces")).
		WillReturnRows(testutils.WorkspaceRows(workspace))
	mock.ExpectQuery(testutils.QueryPattern("FROM public.roles", "WHERE name = $1")).
		WillReturnRows(testutils.RoleRows())
	mock.ExpectRollback()

	_, err := service.LoginOrCreateAccount(context.Background(), models.ExternalAccountRequest{
		Provider:    models.ProviderGoogle,
		ProviderID:  "google-sub-123",
		Email:       user.Email,
		DisplayName: user.Name,
	})

	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "Owner role not found")
	assert.NoError(t, mock.ExpectationsWereMet(), "partial writes must be rolled back")
}

func TestLoginOrCreateAccount_DuplicateEmailRace(t *testing.T) {
	service, mock := newTestAuthService(t)

	email := testutils.UniqueEmail()

	mock.ExpectBegin()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WillReturnRows(testutils.UserRows())
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	mock.ExpectRollback()

	_, err := service.LoginOrCreateAccount(context.Background(), models.ExternalAccountRequest{
		Provider:    models.ProviderGoogle,
		ProviderID:  "google-sub-123",
		Email:       email,
		DisplayName: "Test User",
	})

	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.Equal(t, "Email already exists", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginOrCreateAccount_Validation(t *testing.T) {
	service, _ := newTestAuthService(t)

	base := models.ExternalAccountRequest{
		Provider:    models.ProviderGoogle,
		ProviderID:  "google-sub-123",
		Email:       testutils.UniqueEmail(),
		DisplayName: "Test User",
	}

	tests := []struct {
		name   string
		mutate func(*models.ExternalAccountRequest)
	}{
		{"empty provider", func(r *models.ExternalAccountRequest) { r.Provider = "" }},
		{"empty provider ID", func(r *models.ExternalAccountRequest) { r.ProviderID = "" }},
		{"empty email", func(r *models.ExternalAccountRequest) { r.Email = "" }},
		{"empty display name", func(r *models.ExternalAccountRequest) { r.DisplayName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := service.LoginOrCreateAccount(context.Background(), req)
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
		})
	}
}

func TestRegisterUser_Success(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	workspace := testutils.NewTestWorkspace(user.ID)
	ownerRole := testutils.NewTestRole(models.RoleOwner)

	mock.ExpectBegin()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WithArgs(user.Email).
		WillReturnRows(testutils.UserRows())
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.users")).
		WillReturnRows(testutils.UserRows(user))
	expectProvisioningTail(mock, user, workspace, ownerRole, models.ProviderEmail)
	mock.ExpectCommit()

	result, err := service.RegisterUser(context.Background(), models.RegisterUserRequest{
		Email:    user.Email,
		Name:     user.Name,
		Password: "s3cret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, workspace.ID, result.WorkspaceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	service, mock := newTestAuthService(t)

	existing := testutils.NewTestUser()

	mock.ExpectBegin()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WithArgs(existing.Email).
		WillReturnRows(testutils.UserRows(existing))
	mock.ExpectRollback()

	_, err := service.RegisterUser(context.Background(), models.RegisterUserRequest{
		Email:    existing.Email,
		Name:     "Someone Else",
		Password: "s3cret-password",
	})

	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.Equal(t, "Email already exists", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUser_Validation(t *testing.T) {
	service, _ := newTestAuthService(t)

	tests := []struct {
		name string
		req  models.RegisterUserRequest
	}{
		{"empty email", models.RegisterUserRequest{Name: "Test", Password: "pw"}},
		{"empty name", models.RegisterUserRequest{Email: testutils.UniqueEmail(), Password: "pw"}},
		{"empty password", models.RegisterUserRequest{Email: testutils.UniqueEmail(), Name: "Test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.RegisterUser(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
		})
	}
}

func hashPassword(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	return &hashStr
}

func TestVerifyUser_Success(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	user.PasswordHash = hashPassword(t, "s3cret-password")
	account := testutils.NewTestAccount(models.ProviderEmail, user.Email, user.ID)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.accounts", "WHERE provider = $1 AND provider_id = $2")).
		WithArgs(string(models.ProviderEmail), user.Email).
		WillReturnRows(testutils.AccountRows(account))
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE id = $1")).
		WithArgs(user.ID).
		WillReturnRows(testutils.UserRows(user))

	verified, err := service.VerifyUser(context.Background(), models.VerifyUserRequest{
		Email:    user.Email,
		Password: "s3cret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Nil(t, verified.PasswordHash, "verification result must not expose the stored hash")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyUser_WrongPassword(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	user.PasswordHash = hashPassword(t, "s3cret-password")
	account := testutils.NewTestAccount(models.ProviderEmail, user.Email, user.ID)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.accounts")).
		WillReturnRows(testutils.AccountRows(account))
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE id = $1")).
		WillReturnRows(testutils.UserRows(user))

	_, err := service.VerifyUser(context.Background(), models.VerifyUserRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})

	require.Error(t, err)
	assert.True(t, core.IsUnauthorizedError(err))
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestVerifyUser_UnknownAccount(t *testing.T) {
	service, mock := newTestAuthService(t)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.accounts")).
		WillReturnRows(testutils.AccountRows())

	_, err := service.VerifyUser(context.Background(), models.VerifyUserRequest{
		Email:    testutils.UniqueEmail(),
		Password: "s3cret-password",
	})

	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestVerifyUser_AccountWithoutUser(t *testing.T) {
	service, mock := newTestAuthService(t)

	user := testutils.NewTestUser()
	account := testutils.NewTestAccount(models.ProviderEmail, user.Email, user.ID)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.accounts")).
		WillReturnRows(testutils.AccountRows(account))
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE id = $1")).
		WillReturnRows(testutils.UserRows())

	_, err := service.VerifyUser(context.Background(), models.VerifyUserRequest{
		Email:    user.Email,
		Password: "s3cret-password",
	})

	require.Error(t, err)
	assert.True(t, core.IsIntegrityError(err))
}

func TestVerifyUser_PasswordlessUser(t *testing.T) {
	service, mock := newTestAuthService(t)

	// Signed up through Google; no local credential exists.
	user := testutils.NewTestUser()
	account := testutils.NewTestAccount(models.ProviderEmail, user.Email, user.ID)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.accounts")).
		WillReturnRows(testutils.AccountRows(account))
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE id = $1")).
		WillReturnRows(testutils.UserRows(user))

	_, err := service.VerifyUser(context.Background(), models.VerifyUserRequest{
		Email:    user.Email,
		Password: "s3cret-password",
	})

	require.Error(t, err)
	assert.True(t, core.IsUnauthorizedError(err))
	assert.Equal(t, "Invalid email or password", err.Error())
}
