package db

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Migration precondition errors. Both mean the store was left untouched.
var (
	// ErrAlreadyNormalized is returned when products already carries a
	// department_id column, i.e. the migration has already run.
	ErrAlreadyNormalized = errors.New("products table already has a department_id column; schema is already normalized")

	// ErrMissingFlatColumn is returned when the flat department text column
	// is absent, so there is nothing to normalize.
	ErrMissingFlatColumn = errors.New("products table has no department column; flat schema precondition not met")
)

// MigrateSchema rewrites the flat products table into the normalized
// two-table schema: a departments table keyed by unique name, and a
// products table referencing it through department_id.
//
// The whole rewrite runs in a single transaction (Postgres DDL is
// transactional): departments are created and populated, a shadow
// products table is built with the computed linkage, row-count parity is
// verified, and the tables are swapped. Any failure rolls everything
// back, leaving the store fully pre-migration.
//
// Re-running against an already-normalized schema fails fast with
// ErrAlreadyNormalized before any mutation.
func (db *Database) MigrateSchema(ctx context.Context) error {
	if err := db.checkFlatPrecondition(ctx); err != nil {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Departments table; no-op when already present so a retry after a
	// failed run does not trip over its own bootstrap.
	log.Println("[MIGRATE] Creating departments table...")
	_, err = tx.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS departments (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create departments table: %w", err)
	}

	// 2. Distinct non-null labels become department rows. ON CONFLICT keeps
	// the insert idempotent across retries; name uniqueness is the only
	// constraint enforced here.
	log.Println("[MIGRATE] Populating departments from distinct labels...")
	tag, err := tx.Exec(ctx, `
        INSERT INTO departments (name)
        SELECT DISTINCT department FROM products WHERE department IS NOT NULL
        ON CONFLICT (name) DO NOTHING
    `)
	if err != nil {
		return fmt.Errorf("failed to populate departments: %w", err)
	}
	log.Printf("[MIGRATE] Inserted %d department(s)", tag.RowsAffected())

	// 3. Shadow table with the normalized columns only; the free-text
	// label is projected away.
	log.Println("[MIGRATE] Building shadow products table...")
	_, err = tx.Exec(ctx, `
        CREATE TABLE products_new (
            id INTEGER PRIMARY KEY,
            cost NUMERIC(10,2),
            category TEXT,
            name TEXT,
            brand TEXT,
            retail_price NUMERIC(10,2),
            department_id INTEGER REFERENCES departments(id),
            sku TEXT,
            distribution_center_id INTEGER
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create shadow products table: %w", err)
	}

	// 4. Materialize the linkage. LEFT JOIN so rows without a label keep a
	// NULL department_id instead of being dropped.
	_, err = tx.Exec(ctx, `
        INSERT INTO products_new
            (id, cost, category, name, brand, retail_price, department_id, sku, distribution_center_id)
        SELECT
            p.id, p.cost, p.category, p.name, p.brand, p.retail_price,
            d.id, p.sku, p.distribution_center_id
        FROM products p
        LEFT JOIN departments d ON d.name = p.department
    `)
	if err != nil {
		return fmt.Errorf("failed to populate shadow products table: %w", err)
	}

	// 5. Row-count parity between old and new before the destructive swap.
	var oldCount, newCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&oldCount); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM products_new`).Scan(&newCount); err != nil {
		return fmt.Errorf("failed to count shadow products: %w", err)
	}
	if oldCount != newCount {
		return fmt.Errorf("row-count parity check failed: products has %d rows, shadow has %d", oldCount, newCount)
	}
	log.Printf("[MIGRATE] Parity verified: %d row(s)", newCount)

	// 6. Atomic swap.
	log.Println("[MIGRATE] Swapping products table...")
	if _, err := tx.Exec(ctx, `DROP TABLE products`); err != nil {
		return fmt.Errorf("failed to drop flat products table: %w", err)
	}
	if _, err := tx.Exec(ctx, `ALTER TABLE products_new RENAME TO products`); err != nil {
		return fmt.Errorf("failed to rename shadow products table: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	log.Println("[MIGRATE] Schema migration completed successfully")
	return nil
}

// checkFlatPrecondition verifies the flat schema is in place before any
// mutation: the free-text department column must exist and department_id
// must not.
func (db *Database) checkFlatPrecondition(ctx context.Context) error {
	var hasFlat, hasNormalized bool
	err := db.Pool.QueryRow(ctx, `
        SELECT
            EXISTS (
                SELECT 1 FROM information_schema.columns
                WHERE table_name = 'products' AND column_name = 'department'
            ),
            EXISTS (
                SELECT 1 FROM information_schema.columns
                WHERE table_name = 'products' AND column_name = 'department_id'
            )
    `).Scan(&hasFlat, &hasNormalized)
	if err != nil {
		return fmt.Errorf("failed to inspect products schema: %w", err)
	}

	if hasNormalized {
		return ErrAlreadyNormalized
	}
	if !hasFlat {
		return ErrMissingFlatColumn
	}
	return nil
}
