// Package reports provides aggregate reporting over the product catalog.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"prodcat/internal/domain/product"
)

// --- Deleted products report ---

// DeletedReport counts soft-deleted records over the whole catalog.
type DeletedReport struct {
	TotalProducts   int     `json:"totalProducts"`
	DeletedProducts int     `json:"deletedProducts"`
	Percentage      float64 `json:"percentage"`
}

// --- Non-deleted products report ---

// NonDeletedParams restricts the non-deleted aggregate.
// The date range applies only when both bounds are present.
type NonDeletedParams struct {
	StartDate *time.Time
	EndDate   *time.Time

	// WithPrice selects the percentage numerator:
	// nil → all active, true → active with price > 0, false → price = 0.
	WithPrice *bool
}

// DateScope echoes the requested range back to the caller.
type DateScope struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// NonDeletedPercentage holds the selected ratio.
type NonDeletedPercentage struct {
	WithPrice  *bool   `json:"withPrice"`
	Percentage float64 `json:"percentage"`
}

// NonDeletedReport is the non-deleted products aggregate.
type NonDeletedReport struct {
	Scope               DateScope            `json:"scope"`
	TotalProducts       int                  `json:"totalProducts"`
	TotalNoDeleted      int                  `json:"totalNoDeleted"`
	PercentageNoDeleted NonDeletedPercentage `json:"percentageNoDeleted"`
}

// --- Models-by-brand report ---

// BrandBucket aggregates the active products of one brand.
type BrandBucket struct {
	Brand string `json:"brand"`

	// Distinct model values in insertion order; a missing model is kept as null.
	Models []*string `json:"models"`

	MinPrice     decimal.Decimal    `json:"minPrice"`
	MaxPrice     decimal.Decimal    `json:"maxPrice"`
	AveragePrice float64            `json:"averagePrice"`
	Products     []*product.Product `json:"products"`
}

// ModelsByBrandReport maps lower-cased brand names to their buckets.
type ModelsByBrandReport map[string]*BrandBucket
