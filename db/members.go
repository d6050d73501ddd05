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

type PostgresMembersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for members table
var membersColumns = []string{
	"id",
	"user_id",
	"workspace_id",
	"role_id",
	"joined_at",
}

func NewPostgresMembersRepository(db *sqlx.DB, schema string) *PostgresMembersRepository {
	return &PostgresMembersRepository{db: db, schema: schema}
}

func (r *PostgresMembersRepository) CreateMember(
	ctx context.Context,
	userID, workspaceID, roleID string,
) (*models.Member, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	memberID := core.NewID(core.IDPrefixMember)

	columnsStr := strings.Join(membersColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.members (%s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	member := &models.Member{}
	err := db.QueryRowxContext(ctx, query, memberID, userID, workspaceID, roleID).StructScan(member)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

func (r *PostgresMembersRepository) GetMemberByUserAndWorkspace(
	ctx context.Context,
	userID, workspaceID string,
) (mo.Option[*models.Member], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(membersColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.members
		WHERE user_id = $1 AND workspace_id = $2`, columnsStr, r.schema)

	member := &models.Member{}
	err := db.QueryRowxContext(ctx, query, userID, workspaceID).StructScan(member)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Member](), nil
		}
		return mo.None[*models.Member](), fmt.Errorf("failed to get member by user and workspace: %w", err)
	}

	return mo.Some(member), nil
}

func (r *PostgresMembersRepository) GetMemberByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Member], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(membersColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.members
		WHERE id = $1`, columnsStr, r.schema)

	member := &models.Member{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(member)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Member](), nil
		}
		return mo.None[*models.Member](), fmt.Errorf("failed to get member by ID: %w", err)
	}

	return mo.Some(member), nil
}

// GetMembersByWorkspace returns every member of the workspace joined with
// the owning user and role, ordered by join time.
func (r *PostgresMembersRepository) GetMembersByWorkspace(
	ctx context.Context,
	workspaceID string,
) ([]*models.WorkspaceMember, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT m.id, m.user_id, m.workspace_id, m.joined_at,
		       u.name AS user_name, u.email AS user_email, u.profile_picture,
		       r.name AS role_name
		FROM %s.members m
		JOIN %s.users u ON u.id = m.user_id
		JOIN %s.roles r ON r.id = m.role_id
		WHERE m.workspace_id = $1
		ORDER BY m.joined_at`, r.schema, r.schema, r.schema)

	members := []*models.WorkspaceMember{}
	if err := db.SelectContext(ctx, &members, query, workspaceID); err != nil {
		return nil, fmt.Errorf("failed to get members by workspace: %w", err)
	}

	return members, nil
}

func (r *PostgresMembersRepository) GetMembershipsForUser(
	ctx context.Context,
	userID string,
) ([]*models.Member, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(membersColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.members
		WHERE user_id = $1
		ORDER BY joined_at DESC`, columnsStr, r.schema)

	members := []*models.Member{}
	if err := db.SelectContext(ctx, &members, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get memberships for user: %w", err)
	}

	return members, nil
}

func (r *PostgresMembersRepository) UpdateMemberRole(
	ctx context.Context,
	memberID, roleID string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.members
		SET role_id = $1
		WHERE id = $2`, r.schema)

	result, err := db.ExecContext(ctx, query, roleID, memberID)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}

// CountMembersByRole returns member counts per role name for a workspace.
func (r *PostgresMembersRepository) CountMembersByRole(
	ctx context.Context,
	workspaceID string,
) (map[string]int, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT r.name AS role_name, COUNT(*) AS member_count
		FROM %s.members m
		JOIN %s.roles r ON r.id = m.role_id
		WHERE m.workspace_id = $1
		GROUP BY r.name`, r.schema, r.schema)

	rows := []struct {
		RoleName    string `db:"role_name"`
		MemberCount int    `db:"member_count"`
	}{}
	if err := db.SelectContext(ctx, &rows, query, workspaceID); err != nil {
		return nil, fmt.Errorf("failed to count members by role: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.RoleName] = row.MemberCount
	}

	return counts, nil
}
