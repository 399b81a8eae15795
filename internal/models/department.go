package models

import "errors"

// ErrDepartmentNotFound is returned when no department matches the requested ID.
var ErrDepartmentNotFound = errors.New("department not found")

// Department represents a department row plus its derived product count.
// ProductCount is computed per query and never stored.
type Department struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	ProductCount int    `json:"product_count" db:"product_count"`
}

// Pagination describes the paging window of a product listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// NewPagination derives the metadata for a page over total matching rows.
// TotalPages is ceiling(total/perPage); zero rows yield zero pages.
func NewPagination(total, page, perPage int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
