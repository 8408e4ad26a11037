package amount

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xecwallet/sendd/internal/xec"
)

// User-facing validation reasons for the amount field. An empty string from
// ValidateSend means the amount is acceptable; any non-empty reason blocks
// submission.
const (
	MsgNotANumber       = "Amount must be a number"
	MsgNotPositive      = "Amount must be greater than 0"
	MsgExceedsBalance   = "Amount cannot exceed your " + xec.Ticker + " balance"
	MsgTooManyDecimals  = xec.Ticker + " transactions do not support more than 2 decimal places"
	MsgPriceUnavailable = "Fiat price unavailable, sending in fiat is disabled"
)

var satsPerXec = decimal.NewFromInt(xec.SatsPerXec)

// FiatToCrypto converts a fiat amount to native units at the given rate,
// rounded to the native display precision. The result is presentational; the
// authoritative request amount is recomputed in native units at build time.
func FiatToCrypto(fiat, rate decimal.Decimal) decimal.Decimal {
	return fiat.Div(rate).Round(xec.Decimals)
}

// CryptoToFiat converts a native amount to fiat at the given rate, rounded
// to 2 fiat decimal places.
func CryptoToFiat(crypto, rate decimal.Decimal) decimal.Decimal {
	return crypto.Mul(rate).Round(2)
}

// ToSats converts a native-unit amount to satoshis, rounding to the nearest
// whole satoshi.
func ToSats(native decimal.Decimal) int64 {
	return native.Mul(satsPerXec).Round(0).IntPart()
}

// FromSats converts satoshis to native display units.
func FromSats(sats int64) decimal.Decimal {
	return decimal.New(sats, -xec.Decimals)
}

// ValidateSend classifies a user-entered amount string against the wallet's
// spendable balance (in native units). currency is either the native ticker
// or a fiat code; fiat input requires a rate and is converted before the
// balance comparison. rate is nil when no exchange rate is available.
func ValidateSend(amountStr string, balance decimal.Decimal, rate *decimal.Decimal, currency string) string {
	amt, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return MsgNotANumber
	}
	if amt.LessThanOrEqual(decimal.Zero) {
		return MsgNotPositive
	}

	tested := amt
	if currency != xec.Ticker {
		if rate == nil {
			return MsgPriceUnavailable
		}
		tested = FiatToCrypto(amt, *rate)
	} else if !amt.Equal(amt.Round(xec.Decimals)) {
		return MsgTooManyDecimals
	}

	if tested.GreaterThan(balance) {
		return MsgExceedsBalance
	}
	return ""
}

// MeetsDustFloor reports whether a batch-line amount string parses and is at
// least the minimum per-transaction amount (5.5 XEC).
func MeetsDustFloor(amountStr string) bool {
	amt, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return false
	}
	return amt.GreaterThanOrEqual(xec.DustXec)
}
