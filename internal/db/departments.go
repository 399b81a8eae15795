package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/looklab/catalog-service/internal/models"
)

// ListDepartments returns every department with its computed product count,
// ordered by name. Departments with zero products are included.
func (db *Database) ListDepartments(ctx context.Context) ([]models.Department, error) {
	query := `
        SELECT d.id, d.name, COUNT(p.id) AS product_count
        FROM departments d
        LEFT JOIN products p ON p.department_id = d.id
        GROUP BY d.id, d.name
        ORDER BY d.name
    `

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.ProductCount); err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department rows: %w", err)
	}

	return departments, nil
}

// GetDepartment returns a single department with its product count, or
// models.ErrDepartmentNotFound.
func (db *Database) GetDepartment(ctx context.Context, id int) (*models.Department, error) {
	query := `
        SELECT d.id, d.name, COUNT(p.id) AS product_count
        FROM departments d
        LEFT JOIN products p ON p.department_id = d.id
        WHERE d.id = $1
        GROUP BY d.id, d.name
    `

	var d models.Department
	err := db.Pool.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.ProductCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to query department %d: %w", id, err)
	}

	return &d, nil
}

// ListDepartmentProducts returns one page of a department's products plus
// pagination metadata. The department's existence is confirmed first;
// models.ErrDepartmentNotFound is returned when it does not exist.
func (db *Database) ListDepartmentProducts(ctx context.Context, departmentID, page, perPage int) (*models.Department, []models.Product, models.Pagination, error) {
	dept, err := db.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, nil, models.Pagination{}, err
	}

	// Total matching products, independent of the paging window.
	var total int
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE department_id = $1`, departmentID,
	).Scan(&total)
	if err != nil {
		return nil, nil, models.Pagination{}, fmt.Errorf("failed to count department products: %w", err)
	}

	offset := (page - 1) * perPage
	rows, err := db.Pool.Query(ctx,
		productColumns+` WHERE p.department_id = $1 LIMIT $2 OFFSET $3`,
		departmentID, perPage, offset,
	)
	if err != nil {
		return nil, nil, models.Pagination{}, fmt.Errorf("failed to query department products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, nil, models.Pagination{}, err
	}

	return dept, products, models.NewPagination(total, page, perPage), nil
}
