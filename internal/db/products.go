package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/looklab/catalog-service/internal/models"
)

// productColumns is the shared projection for enriched product reads.
// The LEFT JOIN keeps products without a department in the result set
// with a NULL department name.
const productColumns = `
        SELECT
            p.id, p.cost, p.category, p.name, p.brand, p.retail_price,
            p.department_id, d.name AS department_name,
            p.sku, p.distribution_center_id
        FROM products p
        LEFT JOIN departments d ON d.id = p.department_id
`

// ListProducts returns one page of products in storage order, each enriched
// with its department name. page and perPage must already be validated (>= 1).
func (db *Database) ListProducts(ctx context.Context, page, perPage int) ([]models.Product, error) {
	offset := (page - 1) * perPage

	rows, err := db.Pool.Query(ctx, productColumns+` LIMIT $1 OFFSET $2`, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetProduct returns a single enriched product or models.ErrProductNotFound.
func (db *Database) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	row := db.Pool.QueryRow(ctx, productColumns+` WHERE p.id = $1`, id)

	var p models.Product
	err := row.Scan(
		&p.ID, &p.Cost, &p.Category, &p.Name, &p.Brand, &p.RetailPrice,
		&p.DepartmentID, &p.DepartmentName,
		&p.SKU, &p.DistributionCenterID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}

	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.Cost, &p.Category, &p.Name, &p.Brand, &p.RetailPrice,
			&p.DepartmentID, &p.DepartmentName,
			&p.SKU, &p.DistributionCenterID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, nil
}
