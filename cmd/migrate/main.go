package main

import (
	"log"

	"crm_legal_go/config"
	"crm_legal_go/db"
	"crm_legal_go/logger"
	"crm_legal_go/services"
)

// Applies the schema to the configured database and rewrites tag names
// stored before they were normalized
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close(database)

	log.Printf("Applying schema to %s...", cfg.DBPath)
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	store := services.NewStore(database, appLog)

	log.Println("Normalizing tag names...")
	renamed, merged, err := store.NormalizeTagNames()
	if err != nil {
		log.Fatalf("Failed to normalize tags: %v", err)
	}
	if renamed == 0 && merged == 0 {
		log.Println("No tags needed normalizing.")
	} else {
		log.Printf("Renamed %d tags, merged %d duplicates.", renamed, merged)
	}

	log.Println("Migration completed successfully!")
}
