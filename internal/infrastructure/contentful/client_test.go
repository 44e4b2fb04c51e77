package contentful_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodcat/internal/core/apperror"
	"prodcat/internal/infrastructure/contentful"
)

const envelopeBody = `{
	"total": 2,
	"skip": 0,
	"limit": 100,
	"items": [
		{
			"sys": {
				"id": "cf-1",
				"createdAt": "2024-01-01T00:00:00Z",
				"updatedAt": "2024-02-01T00:00:00Z",
				"revision": 3,
				"contentType": {"sys": {"id": "product"}}
			},
			"fields": {
				"sku": "A1",
				"name": "iPhone 16",
				"brand": "Apple",
				"model": "16",
				"category": "Smartphones",
				"color": "Black",
				"price": 999.9,
				"currency": "USD",
				"stock": 10
			}
		},
		{
			"sys": {
				"id": "cf-2",
				"createdAt": "2024-01-01T00:00:00Z",
				"updatedAt": "2024-02-01T00:00:00Z",
				"revision": 1,
				"contentType": {"sys": {"id": "product"}}
			},
			"fields": {
				"sku": "B1",
				"name": "Pixel 9",
				"brand": "Google",
				"price": "750",
				"currency": "USD",
				"stock": "3"
			}
		}
	]
}`

func newTestClient(baseURL string) *contentful.Client {
	return contentful.NewClient(contentful.Config{
		SpaceID:     "space",
		Environment: "master",
		AccessToken: "token",
		ContentType: "product",
		BaseURL:     baseURL,
	})
}

func TestFetchItems(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(envelopeBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.FetchItems(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/spaces/space/environments/master/entries", gotPath)
	assert.Contains(t, gotQuery, "access_token=token")
	assert.Contains(t, gotQuery, "content_type=product")

	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "cf-1", first.Sys.ID)
	assert.Equal(t, 3, first.Sys.Revision)
	assert.Equal(t, "product", first.Sys.ContentType.Sys.ID)
	assert.Equal(t, "A1", first.Fields.SKU)
	require.NotNil(t, first.Fields.Model)
	assert.Equal(t, "16", *first.Fields.Model)

	// Numeric and string price representations both decode losslessly.
	price, err := decimal.NewFromString(first.Fields.Price.String())
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("999.9")))

	second := items[1]
	assert.Equal(t, "750", second.Fields.Price.String())
	assert.Equal(t, "3", second.Fields.Stock.String())
	assert.Nil(t, second.Fields.Model)
}

func TestFetchItems_TokenRejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := newTestClient(server.URL)
		_, err := client.FetchItems(context.Background())
		server.Close()

		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	}
}

func TestFetchItems_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchItems(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnavailable, appErr.Code)
}

func TestFetchItems_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchItems(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnavailable, appErr.Code)
}

func TestFetchItems_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchItems(context.Background())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnavailable, appErr.Code)
}
