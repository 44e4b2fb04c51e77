package product

import (
	"context"
	"time"
)

// ActivityCounts is the result of the store's aggregate counting primitive.
// All counts are computed in a single query so they observe one snapshot.
type ActivityCounts struct {
	Total              int `db:"total_products"`
	Active             int `db:"total_no_deleted"`
	ActiveWithPrice    int `db:"no_deleted_with_price"`
	ActiveWithoutPrice int `db:"no_deleted_without_price"`
}

// Repository defines the interface for product persistence.
type Repository interface {
	// FindBySKU retrieves a product by its business key.
	// Returns apperror.NewNotFound when no record exists.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Create inserts a new product. The store assigns created_at/updated_at.
	// Unique key violations surface as apperror duplicate errors.
	Create(ctx context.Context, p *Product) error

	// Save persists changes to an existing product, refreshing updated_at.
	Save(ctx context.Context, p *Product) error

	// List returns products, optionally restricted by activity flag.
	// A nil filter returns every record, active or not.
	List(ctx context.Context, activeOnly *bool) ([]*Product, error)

	// CountsByActivity runs the aggregate counting query, optionally
	// restricted to records created within [start, end]. Both bounds must be
	// given for the range to apply.
	CountsByActivity(ctx context.Context, start, end *time.Time) (ActivityCounts, error)
}
