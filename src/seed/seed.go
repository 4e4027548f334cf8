package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salesboard-server/src/models"
)

// Client fetches the upstream product transaction dataset.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchTransactions downloads and decodes the full dataset.
func (c *Client) FetchTransactions(ctx context.Context) ([]models.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch seed data: unexpected status %s", resp.Status)
	}

	var txs []models.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return txs, nil
}
