package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the products table. Idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id                    UUID PRIMARY KEY,
	sku                   VARCHAR(50) NOT NULL UNIQUE,
	name                  VARCHAR(255) NOT NULL,
	brand                 VARCHAR(100) NOT NULL,
	model                 VARCHAR(255),
	category              VARCHAR(100) NOT NULL,
	color                 VARCHAR(50),
	price                 NUMERIC(10, 2) NOT NULL DEFAULT 0,
	currency              VARCHAR(10) NOT NULL DEFAULT 'USD',
	stock                 INTEGER NOT NULL DEFAULT 0,
	contentful_id         VARCHAR(100) NOT NULL UNIQUE,
	contentful_created_at TIMESTAMPTZ NOT NULL,
	contentful_updated_at TIMESTAMPTZ NOT NULL,
	contentful_revision   INTEGER NOT NULL DEFAULT 0,
	content_type          VARCHAR(50) NOT NULL,
	is_active             BOOLEAN NOT NULL DEFAULT TRUE,
	deleted_at            TIMESTAMPTZ,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_category_brand ON products (category, brand);
CREATE INDEX IF NOT EXISTS idx_products_price ON products (price);
CREATE INDEX IF NOT EXISTS idx_products_is_active ON products (is_active);
`

// EnsureSchema applies the products schema on startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
