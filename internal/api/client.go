// Package api provides the HTTP client for the remote collection service.
//
// The client fetches one page of a named collection at a time and reports
// the page's items together with the collection's total item count. It does
// not retry: a failed attempt is surfaced to the caller as-is.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public demo instance of the collection API.
const DefaultBaseURL = "https://dummyjson.com"

// PageRequest describes one page of a collection.
type PageRequest struct {
	Limit    int    // page size, positive
	Skip     int    // zero-based offset, (currentPage-1)*Limit
	Category string // products only; non-empty scopes the request to a category
}

// Client fetches collection pages over HTTP.
type Client struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client for the given base URL with the given request
// timeout. Rapid paging is throttled so the remote API is not hammered.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 4),
	}
}

type usersPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type productsPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Users fetches one page of the users collection. Returns the page's items
// and the total count of the entire remote collection.
func (c *Client) Users(ctx context.Context, req PageRequest) ([]User, int, error) {
	u := fmt.Sprintf("%s/users?limit=%d&skip=%d", c.base, req.Limit, req.Skip)

	var page usersPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, 0, err
	}
	return page.Users, page.Total, nil
}

// Products fetches one page of the products collection. A non-empty
// PageRequest.Category redirects the request to the category-scoped endpoint
// instead of the general listing.
func (c *Client) Products(ctx context.Context, req PageRequest) ([]Product, int, error) {
	u := fmt.Sprintf("%s/products?limit=%d&skip=%d", c.base, req.Limit, req.Skip)
	if req.Category != "" {
		u = fmt.Sprintf("%s/products/category/%s?limit=%d&skip=%d",
			c.base, url.PathEscape(req.Category), req.Limit, req.Skip)
	}

	var page productsPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, 0, err
	}
	return page.Products, page.Total, nil
}

// getJSON performs a GET and decodes the JSON body into dst.
func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "datascope/0.1 (https://github.com/abelbrown/datascope)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
