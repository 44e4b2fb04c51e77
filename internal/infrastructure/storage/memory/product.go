// Package memory provides an in-memory product store.
// It backs unit tests and local development runs without PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"prodcat/internal/core/apperror"
	"prodcat/internal/core/id"
	"prodcat/internal/domain/product"
)

// ProductStore implements product.Repository over in-process maps.
// Write calls are counted so tests can assert no-write behavior.
type ProductStore struct {
	mu      sync.RWMutex
	bySKU   map[string]*product.Product
	ordered []string // insertion order of SKUs

	CreateCalls int
	SaveCalls   int

	// Err, when set, is returned by every operation. Lets tests exercise
	// failure propagation.
	Err error
}

// NewProductStore creates an empty in-memory store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		bySKU: make(map[string]*product.Product),
	}
}

// FindBySKU retrieves a product by business key.
func (s *ProductStore) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return nil, s.Err
	}

	p, ok := s.bySKU[sku]
	if !ok {
		return nil, apperror.NewNotFound("product", sku)
	}
	cp := *p
	return &cp, nil
}

// Create inserts a new product, enforcing sku and contentful_id uniqueness.
func (s *ProductStore) Create(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.CreateCalls++

	if _, ok := s.bySKU[p.SKU]; ok {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}
	for _, existing := range s.bySKU {
		if existing.ContentfulID == p.ContentfulID {
			return apperror.NewDuplicate("product", "contentfulId", p.ContentfulID)
		}
	}

	if id.IsNil(p.ID) {
		p.ID = id.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	cp := *p
	s.bySKU[p.SKU] = &cp
	s.ordered = append(s.ordered, p.SKU)
	return nil
}

// Save persists changes to an existing product.
func (s *ProductStore) Save(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.SaveCalls++

	if _, ok := s.bySKU[p.SKU]; !ok {
		return apperror.NewNotFound("product", p.SKU)
	}

	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.bySKU[p.SKU] = &cp
	return nil
}

// List returns products in insertion order, optionally filtered by activity.
func (s *ProductStore) List(ctx context.Context, activeOnly *bool) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*product.Product, 0, len(s.ordered))
	for _, sku := range s.ordered {
		p := s.bySKU[sku]
		if activeOnly != nil && p.IsActive != *activeOnly {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// CountsByActivity computes the aggregate counts over the store.
func (s *ProductStore) CountsByActivity(ctx context.Context, start, end *time.Time) (product.ActivityCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return product.ActivityCounts{}, s.Err
	}

	var counts product.ActivityCounts
	for _, sku := range s.ordered {
		p := s.bySKU[sku]
		if start != nil && end != nil {
			if p.CreatedAt.Before(*start) || p.CreatedAt.After(*end) {
				continue
			}
		}
		counts.Total++
		if !p.IsActive {
			continue
		}
		counts.Active++
		if p.Price.IsPositive() {
			counts.ActiveWithPrice++
		} else {
			counts.ActiveWithoutPrice++
		}
	}
	return counts, nil
}
