// Applies the embedded schema migrations.
package main

import (
	"log"
	"os"

	"teamspace/config"
	"teamspace/migrations"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}

	if err := migrations.Up(cfg.DatabaseURL, cfg.DatabaseSchema); err != nil {
		log.Printf("❌ Migration failed: %v", err)
		os.Exit(1)
	}

	log.Printf("✅ Migrations applied")
}
