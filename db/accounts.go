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

type PostgresAccountsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for accounts table
var accountsColumns = []string{
	"id",
	"provider",
	"provider_id",
	"user_id",
	"created_at",
}

func NewPostgresAccountsRepository(db *sqlx.DB, schema string) *PostgresAccountsRepository {
	return &PostgresAccountsRepository{db: db, schema: schema}
}

func (r *PostgresAccountsRepository) CreateAccount(
	ctx context.Context,
	provider models.Provider,
	providerID, userID string,
) (*models.Account, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	accountID := core.NewID(core.IDPrefixAccount)

	columnsStr := strings.Join(accountsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.accounts (%s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	account := &models.Account{}
	err := db.QueryRowxContext(ctx, query, accountID, provider, providerID, userID).StructScan(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

func (r *PostgresAccountsRepository) GetAccountByProvider(
	ctx context.Context,
	provider models.Provider,
	providerID string,
) (mo.Option[*models.Account], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(accountsColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.accounts
		WHERE provider = $1 AND provider_id = $2`, columnsStr, r.schema)

	account := &models.Account{}
	err := db.QueryRowxContext(ctx, query, provider, providerID).StructScan(account)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Account](), nil
		}
		return mo.None[*models.Account](), fmt.Errorf("failed to get account by provider: %w", err)
	}

	return mo.Some(account), nil
}

func (r *PostgresAccountsRepository) GetAccountsByUserID(
	ctx context.Context,
	userID string,
) ([]*models.Account, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(accountsColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.accounts
		WHERE user_id = $1
		ORDER BY created_at`, columnsStr, r.schema)

	accounts := []*models.Account{}
	if err := db.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get accounts by user ID: %w", err)
	}

	return accounts, nil
}
