package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"teamspace/core"
	dbtx "teamspace/db/tx"
	"teamspace/models"
)

type PostgresUsersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for users table
var usersColumns = []string{
	"id",
	"email",
	"name",
	"profile_picture",
	"password_hash",
	"current_workspace_id",
	"created_at",
	"updated_at",
}

func NewPostgresUsersRepository(db *sqlx.DB, schema string) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db, schema: schema}
}

func (r *PostgresUsersRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (mo.Option[*models.User], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(usersColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.users
		WHERE email = $1`, columnsStr, r.schema)

	user := &models.User{}
	err := db.QueryRowxContext(ctx, query, email).StructScan(user)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("failed to get user by email: %w", err)
	}

	return mo.Some(user), nil
}

func (r *PostgresUsersRepository) GetUserByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.User], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(usersColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.users
		WHERE id = $1`, columnsStr, r.schema)

	user := &models.User{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(user)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("failed to get user by ID: %w", err)
	}

	return mo.Some(user), nil
}

func (r *PostgresUsersRepository) CreateUser(
	ctx context.Context,
	email, name string,
	profilePicture, passwordHash *string,
) (*models.User, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	userID := core.NewID(core.IDPrefixUser)

	columnsStr := strings.Join(usersColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.users (id, email, name, profile_picture, password_hash, current_workspace_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULL, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr)

	user := &models.User{}
	err := db.QueryRowxContext(ctx, query, userID, email, name, profilePicture, passwordHash).StructScan(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateCurrentWorkspace points the user at the workspace they are "in"
// after login. Called as the final write of the provisioning sequence.
func (r *PostgresUsersRepository) UpdateCurrentWorkspace(
	ctx context.Context,
	userID, workspaceID string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.users
		SET current_workspace_id = $1, updated_at = NOW()
		WHERE id = $2`, r.schema)

	result, err := db.ExecContext(ctx, query, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to update current workspace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// ClearCurrentWorkspace resets the pointer for every user whose current
// workspace is the given one. Used when a workspace is deleted.
func (r *PostgresUsersRepository) ClearCurrentWorkspace(
	ctx context.Context,
	workspaceID string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.users
		SET current_workspace_id = NULL, updated_at = NOW()
		WHERE current_workspace_id = $1`, r.schema)

	if _, err := db.ExecContext(ctx, query, workspaceID); err != nil {
		return fmt.Errorf("failed to clear current workspace: %w", err)
	}

	return nil
}
