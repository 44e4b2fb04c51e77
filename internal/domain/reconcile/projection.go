package reconcile

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"prodcat/internal/core/apperror"
	"prodcat/internal/domain/product"
)

// projection is the comparable subset of fields used to decide whether a
// record changed. Both sides are normalized to the same types before
// comparison: price to decimal, stock to int64, so string-vs-number or
// decimal-scale mismatches never produce a spurious update.
type projection struct {
	Name        string
	Brand       string
	Model       *string
	Category    string
	Color       *string
	Price       decimal.Decimal
	Currency    string
	Stock       int64
	ContentType string
}

// projectItem maps an external item onto the comparable projection.
func projectItem(it Item) (projection, error) {
	price, err := parsePrice(it.Fields.Price)
	if err != nil {
		return projection{}, apperror.NewValidation("invalid price in external item").
			WithDetail("sku", it.Fields.SKU).
			WithDetail("price", it.Fields.Price.String()).
			WithCause(err)
	}

	stock, err := parseStock(it.Fields.Stock)
	if err != nil {
		return projection{}, apperror.NewValidation("invalid stock in external item").
			WithDetail("sku", it.Fields.SKU).
			WithDetail("stock", it.Fields.Stock.String()).
			WithCause(err)
	}

	return projection{
		Name:        it.Fields.Name,
		Brand:       it.Fields.Brand,
		Model:       it.Fields.Model,
		Category:    it.Fields.Category,
		Color:       it.Fields.Color,
		Price:       price,
		Currency:    it.Fields.Currency,
		Stock:       stock,
		ContentType: it.Sys.ContentType.Sys.ID,
	}, nil
}

// projectProduct maps a stored record onto the comparable projection.
func projectProduct(p *product.Product) projection {
	return projection{
		Name:        p.Name,
		Brand:       p.Brand,
		Model:       p.Model,
		Category:    p.Category,
		Color:       p.Color,
		Price:       p.Price,
		Currency:    p.Currency,
		Stock:       int64(p.Stock),
		ContentType: p.ContentType,
	}
}

// equal compares two projections field-by-field. Price uses numeric equality
// so "100" and "100.00" compare equal.
func (a projection) equal(b projection) bool {
	return a.Name == b.Name &&
		a.Brand == b.Brand &&
		strPtrEqual(a.Model, b.Model) &&
		a.Category == b.Category &&
		strPtrEqual(a.Color, b.Color) &&
		a.Price.Equal(b.Price) &&
		a.Currency == b.Currency &&
		a.Stock == b.Stock &&
		a.ContentType == b.ContentType
}

// mergeInto overwrites only the compared fields on the stored record.
// SKU, source linkage ids, lifecycle flags and timestamps stay untouched.
func (a projection) mergeInto(p *product.Product) {
	p.Name = a.Name
	p.Brand = a.Brand
	p.Model = a.Model
	p.Category = a.Category
	p.Color = a.Color
	p.Price = a.Price
	p.Currency = a.Currency
	p.Stock = int(a.Stock)
	p.ContentType = a.ContentType
}

func parsePrice(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

func parseStock(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	return n.Int64()
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
