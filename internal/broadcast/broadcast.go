// Package broadcast defines the contract with the transaction-broadcasting
// collaborator and an HTTP implementation of it. UTXO selection, signing and
// the wire format of the ledger transaction live behind this boundary.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// SendMode labels a request as single- or multi-recipient.
type SendMode string

const (
	ModeSingle SendMode = "single"
	ModeMulti  SendMode = "multi"
)

// Recipient is one destination of a send, with its amount in satoshis.
type Recipient struct {
	Address    string `json:"address"`
	AmountSats int64  `json:"amountSats"`
}

// Message is an optional OP_RETURN message attached to a send.
type Message struct {
	Text      string `json:"text"`
	Encrypted bool   `json:"encrypted"`
}

// Metadata carries attribution fields opaque to validation.
type Metadata struct {
	AirdropTokenID string `json:"airdropTokenId,omitempty"`
}

// SendRequest is the request object handed to the broadcaster. It is built
// fresh per submission attempt and never reused, so stale fee or amount data
// cannot be replayed.
type SendRequest struct {
	RequestID      string          `json:"requestId"`
	Mode           SendMode        `json:"mode"`
	Recipients     []Recipient     `json:"recipients"`
	Message        *Message        `json:"message,omitempty"`
	FeeRatePerByte decimal.Decimal `json:"feeRatePerByte"`
	Metadata       *Metadata       `json:"metadata,omitempty"`
}

// Broadcaster accepts a fully validated send request and returns a link to
// the broadcast transaction.
type Broadcaster interface {
	Send(ctx context.Context, req SendRequest) (string, error)
}

// APIError is a failure reported by the broadcaster. Its shape is untrusted:
// any of the fields may be empty, and Raw preserves the undecoded body for
// the error classifier's fallback path.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrText    string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
	Raw        string `json:"raw,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrText != "" {
		return e.ErrText
	}
	if e.Raw != "" {
		return e.Raw
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("broadcast failed with status %d", e.StatusCode)
	}
	return string(b)
}
