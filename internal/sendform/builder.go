package sendform

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xecwallet/sendd/internal/address"
	"github.com/xecwallet/sendd/internal/amount"
	"github.com/xecwallet/sendd/internal/batch"
	"github.com/xecwallet/sendd/internal/broadcast"
	"github.com/xecwallet/sendd/internal/opreturn"
	"github.com/xecwallet/sendd/internal/xec"
)

// ValidationError is an input problem found when re-deriving validity at
// submission time. It blocks request construction and is recoverable by
// user correction.
type ValidationError struct {
	Field  string // "address" or "amount"
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// buildRequestLocked re-validates the current input and assembles a fresh
// SendRequest. It is called with f.mu held, immediately before dispatch, so
// the validity it derives is against the values actually sent. Each call
// produces a new request; none is ever reused across attempts.
func (f *Form) buildRequestLocked() (*broadcast.SendRequest, error) {
	req := &broadcast.SendRequest{
		RequestID:      uuid.NewString(),
		FeeRatePerByte: f.deps.FeeRate,
	}
	if f.airdrop && f.airdropTokenID != "" {
		req.Metadata = &broadcast.Metadata{AirdropTokenID: f.airdropTokenID}
	}

	if _, ok := f.mode.(Multi); ok {
		recipients, reason := batch.Normalize(f.batchText)
		if reason != "" {
			return nil, &ValidationError{Field: "address", Reason: reason}
		}

		req.Mode = broadcast.ModeMulti
		req.Recipients = make([]broadcast.Recipient, len(recipients))
		for i, r := range recipients {
			req.Recipients[i] = broadcast.Recipient{
				Address:    r.Address,
				AmountSats: amount.ToSats(r.Amount),
			}
		}
		// No message branch here: multi-recipient requests never carry one.
		return req, nil
	}

	// Single-recipient: the request uses the query-stripped address.
	parsed := address.ParseWithParams(f.address)
	if reason := address.CheckSendAddress(parsed.Address); reason != "" {
		return nil, &ValidationError{Field: "address", Reason: reason}
	}

	rate := f.deps.Rates.Rate()
	if reason := amount.ValidateSend(f.amount, f.balance, rate, f.currency); reason != "" {
		return nil, &ValidationError{Field: "amount", Reason: reason}
	}

	// ValidateSend proved the string parses.
	entered, _ := decimal.NewFromString(strings.TrimSpace(f.amount))
	native := entered
	if f.currency != xec.Ticker {
		native = amount.FiatToCrypto(entered, *rate)
	}

	req.Mode = broadcast.ModeSingle
	req.Recipients = []broadcast.Recipient{{
		Address:    parsed.Address,
		AmountSats: amount.ToSats(native),
	}}

	if f.message != "" {
		single, _ := f.mode.(Single)
		req.Message = &broadcast.Message{
			Text:      opreturn.Prepare(f.message, f.messageModeLocked()),
			Encrypted: single.Encrypted,
		}
	}

	return req, nil
}
