package db_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamspace/db"
	"teamspace/testutils"
)

func TestGetUserByEmail(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresUsersRepository(conn, testutils.TestSchema)

	user := testutils.NewTestUser()
	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WithArgs(user.Email).
		WillReturnRows(testutils.UserRows(user))

	maybeUser, err := repo.GetUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.True(t, maybeUser.IsPresent())
	assert.Equal(t, user.ID, maybeUser.MustGet().ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresUsersRepository(conn, testutils.TestSchema)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.users", "WHERE email = $1")).
		WillReturnRows(testutils.UserRows())

	maybeUser, err := repo.GetUserByEmail(context.Background(), testutils.UniqueEmail())
	require.NoError(t, err)
	assert.False(t, maybeUser.IsPresent())
}

func TestCreateUser(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresUsersRepository(conn, testutils.TestSchema)

	user := testutils.NewTestUser()
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.users", "RETURNING")).
		WillReturnRows(testutils.UserRows(user))

	created, err := repo.CreateUser(context.Background(), user.Email, user.Name, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, user.Email, created.Email)
	assert.Nil(t, created.CurrentWorkspaceID)
}

func TestUpdateCurrentWorkspace_UserMissing(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresUsersRepository(conn, testutils.TestSchema)

	mock.ExpectExec(testutils.QueryPattern("UPDATE public.users", "SET current_workspace_id = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCurrentWorkspace(context.Background(), "u_missing", "ws_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
}
