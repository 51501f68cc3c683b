package main

import (
	"context"
	"log"

	"alx_travel_app/pkg/config"
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	res, err := seed.Run(context.Background(), db, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Successfully seeded sample listings (%s)", res)
}
