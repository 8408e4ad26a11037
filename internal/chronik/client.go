// Package chronik is an HTTP client for a chronik-style indexer, the
// wallet's source of spendable outputs and balance.
package chronik

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"

	"github.com/xecwallet/sendd/internal/amount"
)

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Utxo is one spendable output controlled by the wallet. Value is in
// satoshis.
type Utxo struct {
	TxID        string `json:"txid"`
	OutIdx      uint32 `json:"outIdx"`
	Value       uint64 `json:"value"`
	BlockHeight int64  `json:"blockHeight"`
	IsCoinbase  bool   `json:"isCoinbase"`
}

type utxoPage struct {
	Utxos []Utxo `json:"utxos"`
}

// Utxos fetches all spendable outputs for an address, paging through the
// indexer. Txids are checked for well-formedness since the indexer response
// is not trusted.
func (c *Client) Utxos(ctx context.Context, address string) ([]Utxo, error) {
	var all []Utxo
	offset := 0
	const limit = 200

	for {
		page, err := c.fetchPage(ctx, address, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch utxos: %w", err)
		}

		for _, u := range page {
			if _, err := chainhash.NewHashFromStr(u.TxID); err != nil {
				return nil, fmt.Errorf("malformed txid %q in utxo response: %w", u.TxID, err)
			}
		}

		all = append(all, page...)
		if len(page) < limit {
			break
		}
		offset += limit
	}

	return all, nil
}

// Balance returns the total spendable value for an address in native units.
func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	utxos, err := c.Utxos(ctx, address)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	var sats int64
	for _, u := range utxos {
		sats += int64(u.Value)
	}
	return amount.FromSats(sats), nil
}

func (c *Client) fetchPage(ctx context.Context, address string, offset, limit int) ([]Utxo, error) {
	reqURL := fmt.Sprintf(
		"%s/address/%s/utxos?offset=%d&limit=%d",
		c.url, url.PathEscape(address), offset, limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var page utxoPage
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return page.Utxos, nil
}
