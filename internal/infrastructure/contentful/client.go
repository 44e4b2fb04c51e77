// Package contentful fetches catalog entries from the Contentful CDN.
package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"prodcat/internal/core/apperror"
	"prodcat/internal/domain/reconcile"
	"prodcat/pkg/logger"
)

// DefaultBaseURL is the Contentful content delivery endpoint.
const DefaultBaseURL = "https://cdn.contentful.com"

// Config holds client configuration.
type Config struct {
	SpaceID     string
	Environment string
	AccessToken string
	ContentType string

	// BaseURL overrides the CDN endpoint (used in tests).
	BaseURL string

	// Timeout bounds a single fetch; defaults to 30s.
	Timeout time.Duration
}

// Client fetches catalog items over HTTP. It implements reconcile.Source.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a new Contentful client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	url := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?access_token=%s&content_type=%s",
		baseURL, cfg.SpaceID, cfg.Environment, cfg.AccessToken, cfg.ContentType)

	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// FetchItems retrieves one page of catalog entries. Transport and shape
// failures are classified uniformly: credential rejection is unauthorized,
// everything else is upstream-unavailable.
func (c *Client) FetchItems(ctx context.Context) ([]reconcile.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to build contentful request").WithCause(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to reach contentful").WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperror.NewUnauthorized("contentful access token rejected").
			WithDetail("status", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, apperror.NewUnavailable("unexpected contentful response").
			WithDetail("status", resp.StatusCode)
	}

	var envelope reconcile.Envelope
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return nil, apperror.NewUnavailable("malformed contentful response").WithCause(err)
	}

	logger.Debug(ctx, "contentful page fetched",
		"items", len(envelope.Items),
		"total", envelope.Total,
	)
	return envelope.Items, nil
}
