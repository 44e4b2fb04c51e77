// Package reconcile implements the catalog reconciliation engine: it takes a
// set of external catalog items and applies the minimal create/update set
// against the product store, leaving unchanged records untouched.
package reconcile

import (
	"encoding/json"
	"time"
)

// Envelope is the external source's response wrapper.
// Pagination fields (total/skip/limit) are ignored by the engine.
type Envelope struct {
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
	Items []Item `json:"items"`
}

// Item is a single catalog entry as delivered by the external source.
type Item struct {
	Sys    Sys    `json:"sys"`
	Fields Fields `json:"fields"`
}

// Sys is the source's system block.
type Sys struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Revision    int            `json:"revision"`
	ContentType ContentTypeRef `json:"contentType"`
}

// ContentTypeRef links an item to its content type.
type ContentTypeRef struct {
	Sys RefSys `json:"sys"`
}

// RefSys holds the linked entity id.
type RefSys struct {
	ID string `json:"id"`
}

// Fields is the business attribute block. Price and stock use json.Number so
// both string and numeric wire representations decode losslessly.
type Fields struct {
	SKU      string      `json:"sku"`
	Name     string      `json:"name"`
	Brand    string      `json:"brand"`
	Model    *string     `json:"model"`
	Category string      `json:"category"`
	Color    *string     `json:"color"`
	Price    json.Number `json:"price"`
	Currency string      `json:"currency"`
	Stock    json.Number `json:"stock"`
}
