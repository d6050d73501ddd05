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

type PostgresWorkspacesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for workspaces table
var workspacesColumns = []string{
	"id",
	"name",
	"description",
	"owner_id",
	"invite_code",
	"created_at",
	"updated_at",
}

func NewPostgresWorkspacesRepository(db *sqlx.DB, schema string) *PostgresWorkspacesRepository {
	return &PostgresWorkspacesRepository{db: db, schema: schema}
}

func (r *PostgresWorkspacesRepository) CreateWorkspace(
	ctx context.Context,
	name, description, ownerID, inviteCode string,
) (*models.Workspace, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	workspaceID := core.NewID(core.IDPrefixWorkspace)

	columnsStr := strings.Join(workspacesColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.workspaces (%s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	workspace := &models.Workspace{}
	err := db.QueryRowxContext(ctx, query, workspaceID, name, description, ownerID, inviteCode).
		StructScan(workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

func (r *PostgresWorkspacesRepository) GetWorkspaceByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Workspace], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(workspacesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.workspaces
		WHERE id = $1`, columnsStr, r.schema)

	workspace := &models.Workspace{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(workspace)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Workspace](), nil
		}
		return mo.None[*models.Workspace](), fmt.Errorf("failed to get workspace by ID: %w", err)
	}

	return mo.Some(workspace), nil
}

// GetWorkspacesForUser returns every workspace the user is a member of,
// most recently joined first.
func (r *PostgresWorkspacesRepository) GetWorkspacesForUser(
	ctx context.Context,
	userID string,
) ([]*models.Workspace, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	prefixed := make([]string, len(workspacesColumns))
	for i, col := range workspacesColumns {
		prefixed[i] = "w." + col
	}
	columnsStr := strings.Join(prefixed, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.workspaces w
		JOIN %s.members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC`, columnsStr, r.schema, r.schema)

	workspaces := []*models.Workspace{}
	if err := db.SelectContext(ctx, &workspaces, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get workspaces for user: %w", err)
	}

	return workspaces, nil
}

func (r *PostgresWorkspacesRepository) UpdateWorkspace(
	ctx context.Context,
	id, name, description string,
) (*models.Workspace, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(workspacesColumns, ", ")

	query := fmt.Sprintf(`
		UPDATE %s.workspaces
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING %s`, r.schema, columnsStr)

	workspace := &models.Workspace{}
	err := db.QueryRowxContext(ctx, query, name, description, id).StructScan(workspace)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return nil, fmt.Errorf("workspace not found")
		}
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return workspace, nil
}

// DeleteWorkspace removes the workspace row. Member rows go with it via
// the ON DELETE CASCADE on members.workspace_id.
func (r *PostgresWorkspacesRepository) DeleteWorkspace(
	ctx context.Context,
	id string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		DELETE FROM %s.workspaces
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("workspace not found")
	}

	return nil
}
