package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches document records from the content service. It reports
// failures precisely; the degrade-to-empty policy lives in Service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a document client for the given service base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type pageResponse struct {
	Page *Page `json:"page"`
}

// FetchPage retrieves one document. A 404 returns ErrNotFound; transport
// and decode failures return a *LoadError.
func (c *Client) FetchPage(ctx context.Context, category, slug string) (*Page, error) {
	u := fmt.Sprintf("%s/pages/%s?category=%s", c.baseURL, url.PathEscape(slug), url.QueryEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &LoadError{Slug: slug, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LoadError{Slug: slug, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{Slug: slug, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var body pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &LoadError{Slug: slug, Err: err}
	}
	if body.Page == nil {
		return nil, ErrNotFound
	}
	return body.Page, nil
}
