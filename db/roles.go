package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	"teamspace/core"
	dbtx "teamspace/db/tx"
	"teamspace/models"
)

type PostgresRolesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for roles table
var rolesColumns = []string{
	"id",
	"name",
	"permissions",
}

func NewPostgresRolesRepository(db *sqlx.DB, schema string) *PostgresRolesRepository {
	return &PostgresRolesRepository{db: db, schema: schema}
}

func (r *PostgresRolesRepository) GetRoleByName(
	ctx context.Context,
	name models.RoleName,
) (mo.Option[*models.Role], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(rolesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.roles
		WHERE name = $1`, columnsStr, r.schema)

	role := &models.Role{}
	err := db.QueryRowxContext(ctx, query, name).StructScan(role)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Role](), nil
		}
		return mo.None[*models.Role](), fmt.Errorf("failed to get role by name: %w", err)
	}

	return mo.Some(role), nil
}

func (r *PostgresRolesRepository) GetRoleByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Role], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(rolesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.roles
		WHERE id = $1`, columnsStr, r.schema)

	role := &models.Role{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(role)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Role](), nil
		}
		return mo.None[*models.Role](), fmt.Errorf("failed to get role by ID: %w", err)
	}

	return mo.Some(role), nil
}

// UpsertRole creates the role or refreshes its permission bundle. Only the
// seeder writes roles; the provisioning workflow reads them.
func (r *PostgresRolesRepository) UpsertRole(
	ctx context.Context,
	name models.RoleName,
	permissions []string,
) (*models.Role, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	roleID := core.NewID(core.IDPrefixRole)

	columnsStr := strings.Join(rolesColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.roles (%s)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET permissions = EXCLUDED.permissions
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	role := &models.Role{}
	err := db.QueryRowxContext(ctx, query, roleID, name, pq.StringArray(permissions)).StructScan(role)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert role: %w", err)
	}

	return role, nil
}
