// Package migrations embeds the SQL schema migrations and provides a
// runner around golang-migrate.
package migrations

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql
var migrationsFS embed.FS

// NewMigrator creates a migrate instance backed by the embedded SQL files.
// The DDL is unqualified, so the connection's search_path is pinned to the
// schema the repositories query; the tables land where the runtime looks.
func NewMigrator(databaseURL, schema string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	pinnedURL, err := withSearchPath(databaseURL, schema)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, pinnedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// withSearchPath adds (or overrides) the search_path connection parameter
// on a postgres URL.
func withSearchPath(databaseURL, schema string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}

	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Up applies all pending migrations against the given schema. Already
// being at the latest version is not an error.
func Up(databaseURL, schema string) error {
	m, err := NewMigrator(databaseURL, schema)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
