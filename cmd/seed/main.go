package main

import (
	"context"
	"log"

	"carmarket/internal/config"
	"carmarket/internal/database"
	"carmarket/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	creds, seeded, err := seed.Run(context.Background(), db)
	if err != nil {
		log.Fatal("Seeding failed:", err)
	}
	if !seeded {
		log.Println("Database not empty, skipping seed.")
		return
	}

	if err := seed.WriteCredentials(cfg.SeedCredentialsPath, creds); err != nil {
		log.Fatal(err)
	}
	log.Println("Seeding complete")
}
