// Package price retrieves and caches the fiat exchange rate for the native
// currency. The rate is nullable: when it cannot be fetched, fiat-denominated
// entry is degraded rather than treated as zero.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const coinID = "ecash"

type Client struct {
	url        string
	fiat       string
	httpClient *http.Client
}

// NewClient creates a price API client. fiat is the lowercase fiat currency
// code quotes are requested in, e.g. "usd".
func NewClient(url, fiat string) *Client {
	return &Client{
		url:  url,
		fiat: fiat,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchRate fetches the current fiat price of one native coin.
func (c *Client) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	reqURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", c.url, coinID, c.fiat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var quotes map[string]map[string]decimal.Decimal
	if err := json.NewDecoder(res.Body).Decode(&quotes); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	rate, ok := quotes[coinID][c.fiat]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s quote for %s in response", c.fiat, coinID)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("non-positive rate %s", rate)
	}
	return rate, nil
}
