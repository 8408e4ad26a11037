// Package fee estimates network fees and the fee-aware maximum sendable
// amount from the wallet's spendable outputs.
package fee

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xecwallet/sendd/internal/amount"
	"github.com/xecwallet/sendd/internal/chronik"
)

// P2PKH transaction size contributions in bytes.
const (
	p2pkhInputBytes  = 148
	p2pkhOutputBytes = 34
	txOverheadBytes  = 10
)

// MsgMaxCalcFailed is surfaced when the output source cannot be reached.
// The max-amount action must report this rather than default to the full
// balance.
const MsgMaxCalcFailed = "Unable to calculate the max value due to network errors"

// OutputSource exposes the wallet's spendable outputs.
type OutputSource interface {
	Utxos(ctx context.Context, address string) ([]chronik.Utxo, error)
}

// EstimateBytes returns the estimated serialized size of a P2PKH transaction
// spending inputCount outputs to outputCount destinations.
func EstimateBytes(inputCount, outputCount int) int64 {
	return int64(inputCount*p2pkhInputBytes + outputCount*p2pkhOutputBytes + txOverheadBytes)
}

// EstimateFeeSats returns the fee in satoshis at the given rate per byte,
// rounded up to a whole satoshi.
func EstimateFeeSats(ratePerByte decimal.Decimal, inputCount, outputCount int) int64 {
	size := decimal.NewFromInt(EstimateBytes(inputCount, outputCount))
	return ratePerByte.Mul(size).Ceil().IntPart()
}

// Calculator computes the fee-aware maximum sendable amount. It is invoked
// on demand (an explicit "use max" action), not continuously, since output
// enumeration hits the indexer.
type Calculator struct {
	source      OutputSource
	ratePerByte decimal.Decimal
}

func NewCalculator(source OutputSource, ratePerByte decimal.Decimal) *Calculator {
	return &Calculator{
		source:      source,
		ratePerByte: ratePerByte,
	}
}

// MaxSendable returns the total spendable value net of the estimated fee for
// a sweep transaction (one recipient plus change), in native units, floored
// at zero. A source failure is returned as an error; the caller must not
// fall back to the full balance.
func (c *Calculator) MaxSendable(ctx context.Context, address string) (decimal.Decimal, error) {
	utxos, err := c.source.Utxos(ctx, address)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", MsgMaxCalcFailed, err)
	}

	var totalSats int64
	for _, u := range utxos {
		totalSats += int64(u.Value)
	}

	feeSats := EstimateFeeSats(c.ratePerByte, len(utxos), 2)
	maxSats := totalSats - feeSats
	if maxSats < 0 {
		maxSats = 0
	}
	return amount.FromSats(maxSats), nil
}
