package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodcat/internal/domain/product"
)

func ptr(s string) *string { return &s }

func TestProjectionEqual(t *testing.T) {
	base := func() projection {
		return projection{
			Name:        "iPhone 16",
			Brand:       "Apple",
			Model:       ptr("16"),
			Category:    "Smartphones",
			Color:       ptr("Black"),
			Price:       decimal.RequireFromString("999"),
			Currency:    "USD",
			Stock:       10,
			ContentType: "product",
		}
	}

	tests := []struct {
		name   string
		mutate func(*projection)
		want   bool
	}{
		{"identical", func(p *projection) {}, true},
		{"price different scale same value", func(p *projection) {
			p.Price = decimal.RequireFromString("999.00")
		}, true},
		{"price changed", func(p *projection) {
			p.Price = decimal.RequireFromString("998")
		}, false},
		{"name changed", func(p *projection) { p.Name = "iPhone 16 Pro" }, false},
		{"model nil vs set", func(p *projection) { p.Model = nil }, false},
		{"model same value different pointer", func(p *projection) {
			p.Model = ptr("16")
		}, true},
		{"color changed", func(p *projection) { p.Color = ptr("White") }, false},
		{"stock changed", func(p *projection) { p.Stock = 11 }, false},
		{"currency changed", func(p *projection) { p.Currency = "EUR" }, false},
		{"content type changed", func(p *projection) { p.ContentType = "accessory" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base(), base()
			tt.mutate(&b)
			assert.Equal(t, tt.want, a.equal(b))
		})
	}
}

func TestProjectItem_NumberAndStringPrices(t *testing.T) {
	item := Item{
		Sys: Sys{ContentType: ContentTypeRef{Sys: RefSys{ID: "product"}}},
		Fields: Fields{
			SKU:   "A1",
			Price: json.Number("100"),
			Stock: json.Number("5"),
		},
	}

	got, err := projectItem(item)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(5), got.Stock)

	item.Fields.Price = json.Number("100.00")
	again, err := projectItem(item)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(again.Price))
}

func TestProjectItem_EmptyNumbersDefaultToZero(t *testing.T) {
	got, err := projectItem(Item{})
	require.NoError(t, err)
	assert.True(t, got.Price.IsZero())
	assert.Zero(t, got.Stock)
}

func TestProjectItem_InvalidNumbers(t *testing.T) {
	_, err := projectItem(Item{Fields: Fields{Price: json.Number("abc")}})
	assert.Error(t, err)

	_, err = projectItem(Item{Fields: Fields{Stock: json.Number("1.5")}})
	assert.Error(t, err)
}

func TestMergeIntoTouchesOnlyComparedFields(t *testing.T) {
	p := &product.Product{
		SKU:          "A1",
		ContentfulID: "cf-A1",
		IsActive:     false,
		Name:         "old",
		Price:        decimal.NewFromInt(1),
	}

	proj := projection{
		Name:        "new",
		Brand:       "Apple",
		Price:       decimal.NewFromInt(2),
		Currency:    "USD",
		Stock:       4,
		ContentType: "product",
	}
	proj.mergeInto(p)

	assert.Equal(t, "A1", p.SKU)
	assert.Equal(t, "cf-A1", p.ContentfulID)
	assert.False(t, p.IsActive)
	assert.Equal(t, "new", p.Name)
	assert.Equal(t, "Apple", p.Brand)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 4, p.Stock)
}
