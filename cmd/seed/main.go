// Seeds the roles table with the OWNER/ADMIN/MEMBER permission bundles.
// Provisioning requires the OWNER role to exist, so this runs once after
// migrations and is safe to re-run.
package main

import (
	"context"
	"log"
	"os"

	"teamspace/config"
	"teamspace/db"
	"teamspace/middleware"
	"teamspace/models"
	"teamspace/services/txmanager"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Seeding failed: %v", err)
		os.Exit(1)
	}
	log.Printf("✅ Seeding completed successfully")
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "teamspace",
	})

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	rolesRepo := db.NewPostgresRolesRepository(dbConn, cfg.DatabaseSchema)
	txManager := txmanager.NewTransactionManager(dbConn)

	return alertMiddleware.WrapTask("seed roles", func() error {
		return seedRoles(txManager, rolesRepo)
	})()
}

func seedRoles(txManager *txmanager.TransactionManager, rolesRepo *db.PostgresRolesRepository) error {
	return txManager.WithTransaction(context.Background(), func(txCtx context.Context) error {
		for _, roleName := range []models.RoleName{models.RoleOwner, models.RoleAdmin, models.RoleMember} {
			role, err := rolesRepo.UpsertRole(txCtx, roleName, models.RolePermissions[roleName])
			if err != nil {
				return err
			}
			log.Printf("📋 Seeded role %s (%s) with %d permissions", role.Name, role.ID, len(role.Permissions))
		}
		return nil
	})
}
