package reconcile_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodcat/internal/core/apperror"
	"prodcat/internal/core/id"
	"prodcat/internal/domain/product"
	"prodcat/internal/domain/reconcile"
	"prodcat/internal/infrastructure/storage/memory"
)

func strPtr(s string) *string { return &s }

func makeItem(sku, name, brand string, model *string, price, stock string) reconcile.Item {
	return reconcile.Item{
		Sys: reconcile.Sys{
			ID:        "cf-" + sku,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Revision:  1,
			ContentType: reconcile.ContentTypeRef{
				Sys: reconcile.RefSys{ID: "product"},
			},
		},
		Fields: reconcile.Fields{
			SKU:      sku,
			Name:     name,
			Brand:    brand,
			Model:    model,
			Category: "Smartphones",
			Color:    strPtr("Black"),
			Price:    json.Number(price),
			Currency: "USD",
			Stock:    json.Number(stock),
		},
	}
}

func seedFromItem(t *testing.T, store *memory.ProductStore, item reconcile.Item) *product.Product {
	t.Helper()

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(context.Background(), []reconcile.Item{item})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	p, err := store.FindBySKU(context.Background(), item.Fields.SKU)
	require.NoError(t, err)
	return p
}

func TestReconcile_CreatedUpdatedNotAffected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()

	// B1 exists with a stale price, C1 exists and matches exactly.
	seedFromItem(t, store, makeItem("B1", "Pixel 9", "Google", strPtr("9 Pro"), "700", "3"))
	seedFromItem(t, store, makeItem("C1", "Galaxy S25", "Samsung", strPtr("S25"), "850", "8"))

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"),
		makeItem("B1", "Pixel 9", "Google", strPtr("9 Pro"), "750", "3"),
		makeItem("C1", "Galaxy S25", "Samsung", strPtr("S25"), "850", "8"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.NotAffected)
	assert.Equal(t, []string{"B1"}, result.SKUAffected)
}

func TestReconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	svc := reconcile.NewService(store, nil)

	items := []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"),
		makeItem("B1", "Pixel 9", "Google", strPtr("9 Pro"), "750", "3"),
	}

	first, err := svc.Reconcile(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := svc.Reconcile(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 2, second.NotAffected)
	assert.Empty(t, second.SKUAffected)
	assert.NotNil(t, second.SKUAffected)
}

func TestReconcile_CreatedRecordFields(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	svc := reconcile.NewService(store, nil)

	item := makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999.90", "10")
	_, err := svc.Reconcile(ctx, []reconcile.Item{item})
	require.NoError(t, err)

	p, err := store.FindBySKU(ctx, "A1")
	require.NoError(t, err)

	assert.False(t, id.IsNil(p.ID))
	assert.Equal(t, "A1", p.SKU)
	assert.Equal(t, "iPhone 16", p.Name)
	assert.Equal(t, "Apple", p.Brand)
	require.NotNil(t, p.Model)
	assert.Equal(t, "16", *p.Model)
	assert.Equal(t, "Smartphones", p.Category)
	require.NotNil(t, p.Color)
	assert.Equal(t, "Black", *p.Color)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("999.90")))
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, "cf-A1", p.ContentfulID)
	assert.Equal(t, item.Sys.CreatedAt, p.ContentfulCreatedAt)
	assert.Equal(t, item.Sys.UpdatedAt, p.ContentfulUpdatedAt)
	assert.Equal(t, 1, p.ContentfulRevision)
	assert.Equal(t, "product", p.ContentType)
	assert.True(t, p.IsActive)
	assert.Nil(t, p.DeletedAt)
}

func TestReconcile_NoWriteWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	item := makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10")
	seedFromItem(t, store, item)

	store.CreateCalls = 0
	store.SaveCalls = 0

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(ctx, []reconcile.Item{item})
	require.NoError(t, err)

	assert.Equal(t, 1, result.NotAffected)
	assert.Zero(t, store.CreateCalls)
	assert.Zero(t, store.SaveCalls)
}

func TestReconcile_PriceScaleMismatchIsNotAChange(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	seedFromItem(t, store, makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "100", "10"))

	store.SaveCalls = 0

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "100.00", "10"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.NotAffected)
	assert.Equal(t, 0, result.Updated)
	assert.Zero(t, store.SaveCalls)
}

func TestReconcile_MergePreservesIdentityAndLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	seeded := seedFromItem(t, store, makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"))

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16 Pro", "Apple", strPtr("16 Pro"), "1199", "7"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Updated)

	p, err := store.FindBySKU(ctx, "A1")
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, p.ID)
	assert.Equal(t, seeded.SKU, p.SKU)
	assert.Equal(t, seeded.ContentfulID, p.ContentfulID)
	assert.True(t, p.IsActive)
	assert.Equal(t, "iPhone 16 Pro", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1199")))
	assert.Equal(t, 7, p.Stock)
}

func TestReconcile_SoftDeletedNotResurrected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	seedFromItem(t, store, makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"))

	p, err := store.FindBySKU(ctx, "A1")
	require.NoError(t, err)
	now := time.Now().UTC()
	p.IsActive = false
	p.DeletedAt = &now
	require.NoError(t, store.Save(ctx, p))

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "1099", "10"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Updated)

	got, err := store.FindBySKU(ctx, "A1")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.NotNil(t, got.DeletedAt)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1099")))
}

func TestReconcile_DuplicateSKUResolvedInOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	svc := reconcile.NewService(store, nil)

	result, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"),
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "899", "10"),
	})
	require.NoError(t, err)

	// Second occurrence observes the first one's create and lands as update.
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []string{"A1"}, result.SKUAffected)

	p, err := store.FindBySKU(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("899")))
}

func TestReconcile_StoreFailureAbortsPass(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	store.Err = apperror.NewInternal(assert.AnError)

	svc := reconcile.NewService(store, nil)
	result, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"),
	})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestReconcile_InvalidPriceRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProductStore()
	svc := reconcile.NewService(store, nil)

	_, err := svc.Reconcile(ctx, []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "not-a-price", "10"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

type countingSource struct {
	fetches atomic.Int32
	items   []reconcile.Item
}

func (s *countingSource) FetchItems(ctx context.Context) ([]reconcile.Item, error) {
	s.fetches.Add(1)
	time.Sleep(50 * time.Millisecond)
	return s.items, nil
}

func TestRun_ConcurrentCallsShareOnePass(t *testing.T) {
	store := memory.NewProductStore()
	source := &countingSource{items: []reconcile.Item{
		makeItem("A1", "iPhone 16", "Apple", strPtr("16"), "999", "10"),
	}}
	svc := reconcile.NewService(store, source)

	var wg sync.WaitGroup
	results := make([]*reconcile.Result, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.Run(context.Background())
			require.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.fetches.Load())
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, 1, store.CreateCalls)
}

type failingSource struct{}

func (failingSource) FetchItems(ctx context.Context) ([]reconcile.Item, error) {
	return nil, apperror.NewUnavailable("source down")
}

func TestRun_SourceFailurePropagates(t *testing.T) {
	store := memory.NewProductStore()
	svc := reconcile.NewService(store, failingSource{})

	_, err := svc.Run(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnavailable, appErr.Code)
	assert.Zero(t, store.CreateCalls)
}
