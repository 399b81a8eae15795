package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/looklab/catalog-service/internal/db"
	"github.com/looklab/catalog-service/internal/loader"
)

// Bulk loads the flat product catalog from a CSV file (local path or
// s3://bucket/key) into the products table, replacing whatever is there.
func main() {
	source := flag.String("source", "data/products.csv", "catalog CSV: local path or s3://bucket/key")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Printf("Reading catalog from %s...", *source)
	r, err := loader.Open(ctx, *source)
	if err != nil {
		log.Fatalf("Failed to open catalog source: %v", err)
	}
	defer r.Close()

	products, err := loader.ParseProducts(r)
	if err != nil {
		log.Fatalf("Failed to parse catalog CSV: %v", err)
	}
	log.Printf("Parsed %d product row(s)", len(products))

	database, err := db.NewDatabase()
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.Close()

	loaded, err := database.ReplaceFlatProducts(ctx, products)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}

	log.Printf("Data loaded: %d row(s). Ready for migration and queries.", loaded)
}
