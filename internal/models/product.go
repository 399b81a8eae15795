package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// Product represents a product row in the normalized catalog schema.
// DepartmentID is nil for rows whose source data carried no department
// label; DepartmentName is populated via LEFT JOIN and is nil whenever
// DepartmentID is.
type Product struct {
	ID                   int             `json:"id" db:"id"`
	Cost                 decimal.Decimal `json:"cost" db:"cost"`
	Category             string          `json:"category" db:"category"`
	Name                 string          `json:"name" db:"name"`
	Brand                string          `json:"brand" db:"brand"`
	RetailPrice          decimal.Decimal `json:"retail_price" db:"retail_price"`
	DepartmentID         *int            `json:"department_id" db:"department_id"`
	DepartmentName       *string         `json:"department" db:"department_name"`
	SKU                  string          `json:"sku" db:"sku"`
	DistributionCenterID int             `json:"distribution_center_id" db:"distribution_center_id"`
}
