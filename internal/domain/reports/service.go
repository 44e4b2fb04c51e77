package reports

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"prodcat/internal/domain/product"
)

// Service generates catalog reports.
type Service struct {
	store Store
}

// NewService creates a new reports service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// DeletedPercentage reports the share of soft-deleted records over the whole
// catalog, active and inactive alike. An empty catalog yields 0.
func (s *Service) DeletedPercentage(ctx context.Context) (*DeletedReport, error) {
	products, err := s.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	deleted := 0
	for _, p := range products {
		if p.DeletedAt != nil {
			deleted++
		}
	}

	return &DeletedReport{
		TotalProducts:   len(products),
		DeletedProducts: deleted,
		Percentage:      percentage(deleted, len(products)),
	}, nil
}

// NonDeletedPercentage reports active-record ratios from a single aggregate
// store query. The date range applies only when both bounds are given.
func (s *Service) NonDeletedPercentage(ctx context.Context, params NonDeletedParams) (*NonDeletedReport, error) {
	start, end := params.StartDate, params.EndDate
	if start == nil || end == nil {
		start, end = nil, nil
	}

	counts, err := s.store.CountsByActivity(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var numerator int
	switch {
	case params.WithPrice == nil:
		numerator = counts.Active
	case *params.WithPrice:
		numerator = counts.ActiveWithPrice
	default:
		numerator = counts.ActiveWithoutPrice
	}

	return &NonDeletedReport{
		Scope:          DateScope{StartDate: params.StartDate, EndDate: params.EndDate},
		TotalProducts:  counts.Total,
		TotalNoDeleted: counts.Active,
		PercentageNoDeleted: NonDeletedPercentage{
			WithPrice:  params.WithPrice,
			Percentage: percentage(numerator, counts.Total),
		},
	}, nil
}

// ModelsByBrand groups active products by lower-cased brand, optionally
// restricted to a comma-separated, case-insensitive brand allowlist.
func (s *Service) ModelsByBrand(ctx context.Context, brands string) (ModelsByBrandReport, error) {
	active := true
	products, err := s.store.List(ctx, &active)
	if err != nil {
		return nil, err
	}

	allowlist := parseBrandList(brands)
	report := make(ModelsByBrandReport)

	for _, p := range products {
		brand := strings.ToLower(p.Brand)
		if len(allowlist) > 0 && !allowlist[brand] {
			continue
		}

		bucket, ok := report[brand]
		if !ok {
			report[brand] = &BrandBucket{
				Brand:        brand,
				Models:       []*string{p.Model},
				MinPrice:     p.Price,
				MaxPrice:     p.Price,
				AveragePrice: averagePrice([]*product.Product{p}),
				Products:     []*product.Product{p},
			}
			continue
		}

		if !containsModel(bucket.Models, p.Model) {
			bucket.Models = append(bucket.Models, p.Model)
		}
		bucket.Products = append(bucket.Products, p)
		if p.Price.LessThan(bucket.MinPrice) {
			bucket.MinPrice = p.Price
		}
		if p.Price.GreaterThan(bucket.MaxPrice) {
			bucket.MaxPrice = p.Price
		}
		bucket.AveragePrice = averagePrice(bucket.Products)
	}

	return report, nil
}

// percentage returns part/total*100 rounded to 2 decimals, 0 when total is 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
	return ratio.Round(2).InexactFloat64()
}

// averagePrice recomputes the arithmetic mean over the bucket's products,
// rounded to 2 decimals.
func averagePrice(products []*product.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(products)))).Round(2).InexactFloat64()
}

func parseBrandList(brands string) map[string]bool {
	if brands == "" {
		return nil
	}
	out := make(map[string]bool)
	for _, b := range strings.Split(brands, ",") {
		if t := strings.ToLower(strings.TrimSpace(b)); t != "" {
			out[t] = true
		}
	}
	return out
}

func containsModel(models []*string, model *string) bool {
	for _, m := range models {
		if m == nil || model == nil {
			if m == model {
				return true
			}
			continue
		}
		if *m == *model {
			return true
		}
	}
	return false
}
