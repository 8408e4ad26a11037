package broadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts send requests to the wallet-node sidecar over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type sendResponse struct {
	TransactionLink string `json:"transactionLink"`
}

// Send submits the request and returns the transaction link. Failures are
// returned as *APIError with whatever shape the collaborator produced.
func (c *Client) Send(ctx context.Context, req SendRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url+"/wallet/send", bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to post send request: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", decodeAPIError(res.StatusCode, resBody)
	}

	var parsed sendResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.TransactionLink == "" {
		return "", fmt.Errorf("broadcaster returned no transaction link")
	}
	return parsed.TransactionLink, nil
}

// decodeAPIError inspects an untrusted failure body. Bodies that do not
// decode as the expected error shape are preserved verbatim in Raw.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.ErrText == "" && apiErr.Message == "") {
		apiErr.ErrText = ""
		apiErr.Message = ""
		apiErr.Raw = strings.TrimSpace(string(body))
	}
	return apiErr
}
