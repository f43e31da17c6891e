package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches raw catalog data from the content service.
type Client struct {
	baseURL string
	apiKey  string // public anonymous key, sent as a bearer token
	http    *http.Client
}

// NewClient creates a catalog client for the given service base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type menuResponse struct {
	Menu []*Node `json:"menu"`
}

// FetchMenu retrieves the raw (unnormalized) catalog tree for a category.
func (c *Client) FetchMenu(ctx context.Context, category string) ([]*Node, error) {
	u := fmt.Sprintf("%s/menu?category=%s", c.baseURL, url.QueryEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building menu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching menu for %q: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching menu for %q: status %d", category, resp.StatusCode)
	}

	var body menuResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding menu for %q: %w", category, err)
	}
	return body.Menu, nil
}
