package reconcile

import (
	"context"

	"golang.org/x/sync/singleflight"

	"prodcat/internal/core/apperror"
	"prodcat/internal/core/id"
	"prodcat/internal/domain/product"
	"prodcat/pkg/logger"
)

// Source fetches the current external item set.
type Source interface {
	FetchItems(ctx context.Context) ([]Item, error)
}

// Result summarizes one reconciliation pass.
type Result struct {
	Total       int      `json:"total"`
	Created     int      `json:"created"`
	Updated     int      `json:"updated"`
	NotAffected int      `json:"notAffected"`
	SKUAffected []string `json:"skuAffected"`
}

// Service runs reconciliation passes against the product store.
type Service struct {
	products product.Repository
	source   Source

	// Collapses concurrent triggers (scheduler + manual) into one pass.
	group singleflight.Group
}

// NewService creates a new reconciliation service.
func NewService(products product.Repository, source Source) *Service {
	return &Service{
		products: products,
		source:   source,
	}
}

// Run fetches the external item set and reconciles it against the store.
// Concurrent calls share a single in-flight pass: no two passes overlap.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	v, err, _ := s.group.Do("sync", func() (any, error) {
		logger.Info(ctx, "starting sync")

		items, err := s.source.FetchItems(ctx)
		if err != nil {
			logger.Error(ctx, "sync fetch failed", "error", err)
			return nil, err
		}
		logger.Info(ctx, "fetched products from source", "count", len(items))

		result, err := s.Reconcile(ctx, items)
		if err != nil {
			logger.Error(ctx, "sync failed", "error", err)
			return nil, err
		}

		logger.Info(ctx, "sync completed",
			"total", result.Total,
			"created", result.Created,
			"updated", result.Updated,
			"not_affected", result.NotAffected,
			"sku_affected", len(result.SKUAffected),
		)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// Reconcile applies the external item set to the store, strictly in input
// order: each item's lookup observes the writes of the items before it, so a
// business key appearing twice in one fetch resolves in arrival order. The
// first store failure aborts the pass.
//
// Soft-deleted records are not resurrected: the merge path never touches
// is_active or deleted_at, only the create path forces is_active=true.
func (s *Service) Reconcile(ctx context.Context, items []Item) (*Result, error) {
	result := &Result{
		Total:       len(items),
		SKUAffected: []string{},
	}

	for _, item := range items {
		existing, err := s.products.FindBySKU(ctx, item.Fields.SKU)
		switch {
		case apperror.IsNotFound(err):
			created, err := newProduct(item)
			if err != nil {
				return nil, err
			}
			if err := s.products.Create(ctx, created); err != nil {
				return nil, err
			}
			result.Created++

		case err != nil:
			return nil, err

		default:
			incoming, err := projectItem(item)
			if err != nil {
				return nil, err
			}
			if incoming.equal(projectProduct(existing)) {
				result.NotAffected++
				continue
			}
			incoming.mergeInto(existing)
			if err := s.products.Save(ctx, existing); err != nil {
				return nil, err
			}
			result.Updated++
			result.SKUAffected = append(result.SKUAffected, existing.SKU)
		}
	}

	return result, nil
}

// newProduct builds a fresh record from an external item, mapping every
// business field plus the source linkage block.
func newProduct(item Item) (*product.Product, error) {
	proj, err := projectItem(item)
	if err != nil {
		return nil, err
	}

	p := &product.Product{
		ID:                  id.New(),
		SKU:                 item.Fields.SKU,
		ContentfulID:        item.Sys.ID,
		ContentfulCreatedAt: item.Sys.CreatedAt,
		ContentfulUpdatedAt: item.Sys.UpdatedAt,
		ContentfulRevision:  item.Sys.Revision,
		IsActive:            true,
	}
	proj.mergeInto(p)
	return p, nil
}
