package models

import "github.com/shopspring/decimal"

// FlatProduct is one row of the pre-migration flat schema, where the
// department is still a free-text label. Department is nil when the source
// field was empty.
type FlatProduct struct {
	ID                   int
	Cost                 decimal.Decimal
	Category             string
	Name                 string
	Brand                string
	RetailPrice          decimal.Decimal
	Department           *string
	SKU                  string
	DistributionCenterID int
}
