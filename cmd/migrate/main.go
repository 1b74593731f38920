package main

import (
	"log"

	"github.com/nutriflow/backend/config"
	"github.com/nutriflow/backend/internal/database"
)

// Standalone migration runner for deploy pipelines that migrate before
// rolling the API.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed")
}
