// Package product provides the product catalog entity and services over it.
// Products mirror entries of an external Contentful space; their business
// fields are owned by the source, lifecycle flags are owned by this service.
package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"prodcat/internal/core/apperror"
	"prodcat/internal/core/id"
)

// Product represents a single catalog record persisted locally.
type Product struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// SKU is the immutable business key, unique across all records
	SKU string `db:"sku" json:"sku"`

	Name     string          `db:"name" json:"name"`
	Brand    string          `db:"brand" json:"brand"`
	Model    *string         `db:"model" json:"model,omitempty"`
	Category string          `db:"category" json:"category"`
	Color    *string         `db:"color" json:"color,omitempty"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Currency string          `db:"currency" json:"currency"`
	Stock    int             `db:"stock" json:"stock"`

	// Source linkage fields, owned by the sync path
	ContentfulID        string    `db:"contentful_id" json:"contentfulId"`
	ContentfulCreatedAt time.Time `db:"contentful_created_at" json:"contentfulCreatedAt"`
	ContentfulUpdatedAt time.Time `db:"contentful_updated_at" json:"contentfulUpdatedAt"`
	ContentfulRevision  int       `db:"contentful_revision" json:"contentfulRevision"`
	ContentType         string    `db:"content_type" json:"contentType"`

	// Lifecycle flags, owned exclusively by the delete operation
	IsActive  bool       `db:"is_active" json:"isActive"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`

	// Store-managed timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate checks entity invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}
	return nil
}

// IsDeleted reports whether the record carries a soft-delete mark.
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}
