package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamspace/db"
	"teamspace/models"
	"teamspace/testutils"
)

func TestGetRoleByName(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresRolesRepository(conn, testutils.TestSchema)

	ownerRole := testutils.NewTestRole(models.RoleOwner)
	mock.ExpectQuery(testutils.QueryPattern("FROM public.roles", "WHERE name = $1")).
		WithArgs(string(models.RoleOwner)).
		WillReturnRows(testutils.RoleRows(ownerRole))

	maybeRole, err := repo.GetRoleByName(context.Background(), models.RoleOwner)
	require.NoError(t, err)
	require.True(t, maybeRole.IsPresent())

	role := maybeRole.MustGet()
	assert.Equal(t, models.RoleOwner, role.Name)
	assert.ElementsMatch(t, models.RolePermissions[models.RoleOwner], []string(role.Permissions))
}

func TestGetRoleByName_NotSeeded(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresRolesRepository(conn, testutils.TestSchema)

	mock.ExpectQuery(testutils.QueryPattern("FROM public.roles", "WHERE name = $1")).
		WillReturnRows(testutils.RoleRows())

	maybeRole, err := repo.GetRoleByName(context.Background(), models.RoleOwner)
	require.NoError(t, err)
	assert.False(t, maybeRole.IsPresent())
}

func TestUpsertRole(t *testing.T) {
	conn, mock := testutils.NewMockDB(t)
	repo := db.NewPostgresRolesRepository(conn, testutils.TestSchema)

	adminRole := testutils.NewTestRole(models.RoleAdmin)
	mock.ExpectQuery(testutils.QueryPattern("INSERT INTO public.roles", "ON CONFLICT (name)", "RETURNING")).
		WillReturnRows(testutils.RoleRows(adminRole))

	role, err := repo.UpsertRole(context.Background(), models.RoleAdmin, models.RolePermissions[models.RoleAdmin])
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role.Name)
}
