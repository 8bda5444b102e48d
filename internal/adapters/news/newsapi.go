package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const apiURLBase = "https://newsapi.org"

const requestTimeout = 5 * time.Second

// Client proxies headline queries to newsapi.org. The response body is
// passed through untouched so the frontend owns the article shape.
type Client struct {
	url    string
	apiKey string
	logger *slog.Logger
	client http.Client
}

// NewClient creates a newsapi.org client. An empty baseURL selects the
// production endpoint; tests point it at a local server.
func NewClient(baseURL string, apiKey string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = apiURLBase
	}
	return &Client{
		url:    baseURL,
		apiKey: apiKey,
		logger: logger,
		client: http.Client{Timeout: requestTimeout},
	}
}

// Headlines fetches crypto-related headlines matching the query.
func (c *Client) Headlines(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		query = "cryptocurrency"
	}

	endpoint := fmt.Sprintf("%s/v2/everything?q=%s&sortBy=publishedAt&pageSize=20", c.url, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read news response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("News upstream returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("news upstream returned status %d", resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
