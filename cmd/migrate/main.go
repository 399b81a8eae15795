package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/looklab/catalog-service/internal/db"
)

// One-shot schema normalization. Expects the flat products table (with its
// free-text department column) to be in place; refuses to run twice.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)

	database, err := db.NewDatabase()
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.MigrateSchema(ctx); err != nil {
		switch {
		case errors.Is(err, db.ErrAlreadyNormalized):
			log.Fatalf("Refusing to migrate: %v", err)
		case errors.Is(err, db.ErrMissingFlatColumn):
			log.Fatalf("Refusing to migrate: %v (run the loader first)", err)
		default:
			log.Fatalf("Migration failed and was rolled back: %v", err)
		}
	}

	log.Println("Migration completed; normalized schema is in place")
}
