// Package loader reads the flat product catalog CSV and turns it into rows
// for the pre-migration products table.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/looklab/catalog-service/internal/models"
	"github.com/shopspring/decimal"
)

// expected columns; order in the file does not matter, the header decides.
var requiredColumns = []string{
	"id", "cost", "category", "name", "brand",
	"retail_price", "department", "sku", "distribution_center_id",
}

// ParseProducts reads a flat catalog CSV and returns its rows. The first
// record must be a header naming every required column. An empty department
// field becomes nil so it loads as SQL NULL.
func ParseProducts(r io.Reader) ([]models.FlatProduct, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing required column %q", name)
		}
	}

	var products []models.FlatProduct
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record at line %d: %w", line, err)
		}

		p, err := parseRow(record, col)
		if err != nil {
			return nil, fmt.Errorf("invalid CSV record at line %d: %w", line, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func parseRow(record []string, col map[string]int) (models.FlatProduct, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[col[name]])
	}

	id, err := strconv.Atoi(field("id"))
	if err != nil {
		return models.FlatProduct{}, fmt.Errorf("bad id %q: %w", field("id"), err)
	}

	cost, err := parseDecimal(field("cost"))
	if err != nil {
		return models.FlatProduct{}, fmt.Errorf("bad cost %q: %w", field("cost"), err)
	}

	retailPrice, err := parseDecimal(field("retail_price"))
	if err != nil {
		return models.FlatProduct{}, fmt.Errorf("bad retail_price %q: %w", field("retail_price"), err)
	}

	dcID := 0
	if s := field("distribution_center_id"); s != "" {
		dcID, err = strconv.Atoi(s)
		if err != nil {
			return models.FlatProduct{}, fmt.Errorf("bad distribution_center_id %q: %w", s, err)
		}
	}

	var department *string
	if s := field("department"); s != "" {
		department = &s
	}

	return models.FlatProduct{
		ID:                   id,
		Cost:                 cost,
		Category:             field("category"),
		Name:                 field("name"),
		Brand:                field("brand"),
		RetailPrice:          retailPrice,
		Department:           department,
		SKU:                  field("sku"),
		DistributionCenterID: dcID,
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
