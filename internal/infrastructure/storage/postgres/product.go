package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"prodcat/internal/core/apperror"
	"prodcat/internal/core/id"
	"prodcat/internal/domain/product"
)

const productsTable = "products"

var productColumns = []string{
	"id", "sku", "name", "brand", "model", "category", "color",
	"price", "currency", "stock",
	"contentful_id", "contentful_created_at", "contentful_updated_at",
	"contentful_revision", "content_type",
	"is_active", "deleted_at", "created_at", "updated_at",
}

// ProductRepo implements product.Repository on PostgreSQL.
type ProductRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(productColumns...).
		From(productsTable)
}

// FindBySKU retrieves a product by its business key.
func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"sku": sku}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.pool, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, fmt.Errorf("find by sku: %w", err)
	}

	return &p, nil
}

// Create inserts a new product, assigning id and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	if id.IsNil(p.ID) {
		p.ID = id.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	q := r.builder.
		Insert(productsTable).
		SetMap(productToMap(p))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		if dup := classifyUniqueViolation(err, p); dup != nil {
			return dup
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// Save updates an existing product by id, refreshing updated_at.
func (r *ProductRepo) Save(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now().UTC()

	data := productToMap(p)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder.
		Update(productsTable).
		SetMap(data).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		if dup := classifyUniqueViolation(err, p); dup != nil {
			return dup
		}
		return fmt.Errorf("update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.SKU)
	}

	return nil
}

// List returns products, optionally restricted by activity flag.
func (r *ProductRepo) List(ctx context.Context, activeOnly *bool) ([]*product.Product, error) {
	q := r.baseSelect().OrderBy("created_at")
	if activeOnly != nil {
		q = q.Where(squirrel.Eq{"is_active": *activeOnly})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []*product.Product
	if err := pgxscan.Select(ctx, r.pool, &products, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// CountsByActivity runs the aggregate counting query in a single statement.
func (r *ProductRepo) CountsByActivity(ctx context.Context, start, end *time.Time) (product.ActivityCounts, error) {
	sql := `
		SELECT
			COUNT(*)::int AS total_products,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)::int AS total_no_deleted,
			COALESCE(SUM(CASE WHEN is_active AND price > 0 THEN 1 ELSE 0 END), 0)::int AS no_deleted_with_price,
			COALESCE(SUM(CASE WHEN is_active AND price = 0 THEN 1 ELSE 0 END), 0)::int AS no_deleted_without_price
		FROM products`

	var args []any
	if start != nil && end != nil {
		sql += ` WHERE created_at BETWEEN $1 AND $2`
		args = append(args, *start, *end)
	}

	var counts product.ActivityCounts
	if err := pgxscan.Get(ctx, r.pool, &counts, sql, args...); err != nil {
		return product.ActivityCounts{}, fmt.Errorf("counts by activity: %w", err)
	}

	return counts, nil
}

// classifyUniqueViolation maps a 23505 to the duplicate error taxonomy.
func classifyUniqueViolation(err error, p *product.Product) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	field, value := "sku", p.SKU
	if strings.Contains(pgErr.ConstraintName, "contentful") {
		field, value = "contentfulId", p.ContentfulID
	}
	return apperror.NewDuplicate("product", field, value).WithCause(err)
}

func productToMap(p *product.Product) map[string]any {
	return map[string]any{
		"id":                    p.ID,
		"sku":                   p.SKU,
		"name":                  p.Name,
		"brand":                 p.Brand,
		"model":                 p.Model,
		"category":              p.Category,
		"color":                 p.Color,
		"price":                 p.Price,
		"currency":              p.Currency,
		"stock":                 p.Stock,
		"contentful_id":         p.ContentfulID,
		"contentful_created_at": p.ContentfulCreatedAt,
		"contentful_updated_at": p.ContentfulUpdatedAt,
		"contentful_revision":   p.ContentfulRevision,
		"content_type":          p.ContentType,
		"is_active":             p.IsActive,
		"deleted_at":            p.DeletedAt,
		"created_at":            p.CreatedAt,
		"updated_at":            p.UpdatedAt,
	}
}
