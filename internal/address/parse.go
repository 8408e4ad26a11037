package address

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Parsed is the result of splitting a raw destination string into its
// address and any embedded request parameters. Built fresh per call from
// user input or a deep link, never persisted.
type Parsed struct {
	Address string
	// QueryString holds everything after the first "?", verbatim, so the
	// caller can surface unsupported parameters to the user. Empty when the
	// input carried no query suffix.
	QueryString string
	// Amount is set only when a recognized "amount" parameter is present
	// and parses as a non-negative number.
	Amount *decimal.Decimal
}

// ParseWithParams splits raw on the first "?" and extracts a supported
// amount parameter if one is present. The split is purely syntactic: the
// address part is not validated here, and malformed query strings are kept
// for display but yield no amount. It never fails.
func ParseWithParams(raw string) Parsed {
	addr, query, found := strings.Cut(raw, "?")
	parsed := Parsed{Address: addr}
	if !found {
		return parsed
	}
	parsed.QueryString = query

	values, err := url.ParseQuery(query)
	if err != nil {
		return parsed
	}
	amountStr := values.Get("amount")
	if amountStr == "" {
		return parsed
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsNegative() {
		return parsed
	}
	parsed.Amount = &amount
	return parsed
}
