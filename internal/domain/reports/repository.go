package reports

import (
	"context"
	"time"

	"prodcat/internal/domain/product"
)

// Store is the slice of the product store the reporting engine reads.
// product.Repository satisfies it.
type Store interface {
	List(ctx context.Context, activeOnly *bool) ([]*product.Product, error)
	CountsByActivity(ctx context.Context, start, end *time.Time) (product.ActivityCounts, error)
}
