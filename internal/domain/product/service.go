package product

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"prodcat/pkg/logger"
)

// MaxPageSize is the largest page the external contract allows.
const MaxPageSize = 5

// QueryFilter holds the optional, AND-composed query predicates.
type QueryFilter struct {
	Name     string
	Category string
	Brand    string
	Model    string

	// Inclusive price bounds
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	// 1-indexed pagination
	Page  int
	Limit int
}

// QueryResult is the paginated query response.
// Total reflects the filtered set size before pagination.
type QueryResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	Limit   int        `json:"limit"`
	Data    []*Product `json:"data"`
}

// Service provides read access and soft deletion over the product store.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Query returns the active products matching the filter, sorted by name with
// locale-aware collation and paginated 1-indexed.
func (s *Service) Query(ctx context.Context, filter QueryFilter) (*QueryResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	active := true
	products, err := s.repo.List(ctx, &active)
	if err != nil {
		return nil, err
	}

	matched := make([]*Product, 0, len(products))
	for _, p := range products {
		if matches(p, filter) {
			matched = append(matched, p)
		}
	}

	// Collators keep internal buffers, so build one per call.
	collator := collate.New(language.English, collate.IgnoreCase, collate.Loose)
	sort.SliceStable(matched, func(i, j int) bool {
		return collator.CompareString(matched[i].Name, matched[j].Name) < 0
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	end := start + filter.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &QueryResult{
		Success: true,
		Message: "Products fetched successfully",
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Data:    matched[start:end],
	}, nil
}

// ListAll returns products from the store, optionally filtered by activity.
func (s *Service) ListAll(ctx context.Context, activeOnly *bool) ([]*Product, error) {
	return s.repo.List(ctx, activeOnly)
}

// Delete soft-deletes a product by SKU: the record stays in the store with
// is_active=false and deleted_at set, and later syncs never resurrect it.
func (s *Service) Delete(ctx context.Context, sku string) error {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	p.IsActive = false
	p.DeletedAt = &now

	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product soft-deleted", "sku", sku)
	return nil
}

func matches(p *Product, f QueryFilter) bool {
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false
	}
	if f.Category != "" && !containsFold(strings.TrimSpace(p.Category), strings.TrimSpace(f.Category)) {
		return false
	}
	if f.Brand != "" && !containsFold(p.Brand, f.Brand) {
		return false
	}
	if f.Model != "" {
		// Records without a model never match a model filter.
		if p.Model == nil || !containsFold(*p.Model, f.Model) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
