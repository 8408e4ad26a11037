// Package batch normalizes one-to-many recipient lists entered as
// line-delimited "address,amount" pairs.
package batch

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xecwallet/sendd/internal/address"
	"github.com/xecwallet/sendd/internal/amount"
)

// User-facing reasons reported by Normalize. The first violating line wins;
// later lines are not inspected.
const (
	MsgBlankInput = "Input must not be blank"
	MsgEmptyRow   = "Empty spaces and rows must be removed"
	MsgBadAddress = "Ensure each XEC address is valid"
	MsgBelowDust  = "Ensure each tx is at least 5.5 XEC"
)

// Recipient is one validated batch line.
type Recipient struct {
	Address string
	Amount  decimal.Decimal
}

// Normalize parses and validates a multi-line recipient batch. It folds over
// the lines top-to-bottom and halts at the first violation, returning its
// reason; the reported error is always the first one encountered. Only when
// every line passes is the batch accepted, with reason "".
func Normalize(input string) ([]Recipient, string) {
	if input == "" {
		return nil, MsgBlankInput
	}

	lines := strings.Split(input, "\n")
	recipients := make([]Recipient, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			return nil, MsgEmptyRow
		}

		addrStr, amountStr, _ := strings.Cut(line, ",")
		addrStr = strings.TrimSpace(addrStr)
		amountStr = strings.TrimSpace(amountStr)

		if !address.IsValidAddress(addrStr) {
			return nil, MsgBadAddress
		}
		if !amount.MeetsDustFloor(amountStr) {
			return nil, MsgBelowDust
		}

		// MeetsDustFloor already proved the string parses.
		amt, _ := decimal.NewFromString(amountStr)
		recipients = append(recipients, Recipient{
			Address: addrStr,
			Amount:  amt,
		})
	}

	return recipients, ""
}
