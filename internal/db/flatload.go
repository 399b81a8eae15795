package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/looklab/catalog-service/internal/models"
)

// ReplaceFlatProducts drops any existing products table and bulk loads the
// given rows into a freshly created flat table via COPY. The replacement is
// wholesale: a reload starts from a clean flat table, the precondition the
// schema migration expects. Runs in one transaction so a failed load leaves
// the previous table intact.
func (db *Database) ReplaceFlatProducts(ctx context.Context, rows []models.FlatProduct) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DROP TABLE IF EXISTS products`); err != nil {
		return 0, fmt.Errorf("failed to drop existing products table: %w", err)
	}

	_, err = tx.Exec(ctx, `
        CREATE TABLE products (
            id INTEGER PRIMARY KEY,
            cost NUMERIC(10,2),
            category TEXT,
            name TEXT,
            brand TEXT,
            retail_price NUMERIC(10,2),
            department TEXT,
            sku TEXT,
            distribution_center_id INTEGER
        )
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to create flat products table: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"products"},
		[]string{"id", "cost", "category", "name", "brand", "retail_price", "department", "sku", "distribution_center_id"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{
				r.ID, r.Cost, r.Category, r.Name, r.Brand,
				r.RetailPrice, r.Department, r.SKU, r.DistributionCenterID,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy product rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit load transaction: %w", err)
	}

	log.Printf("[CATALOG-DB] Loaded %d flat product row(s)", copied)
	return copied, nil
}
