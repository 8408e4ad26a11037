package xec

import "github.com/shopspring/decimal"

// Network-wide constants for eCash (XEC) sends.
const (
	Ticker = "XEC"

	// Decimals is the number of display decimal places of the native unit.
	// 1 XEC = 100 satoshis.
	Decimals   = 2
	SatsPerXec = 100

	// DustSats is the smallest output value the network relays. Amounts in
	// one-to-many batches must meet this floor (5.5 XEC).
	DustSats = 550

	// MempoolAncestorLimit is the node policy cap on unconfirmed ancestor
	// transactions. Exceeding it rejects a broadcast until a block confirms.
	MempoolAncestorLimit = 50

	// CongestionSignature is the node error text emitted when a send hits
	// the ancestor limit. Matched verbatim by the error classifier.
	CongestionSignature = "too-long-mempool-chain, too many unconfirmed ancestors [limit: 50] (code 64)"
)

// OP_RETURN message character limits per transmission mode.
const (
	PublicMsgCharLimit    = 160
	EncryptedMsgCharLimit = 94
	AirdropMsgCharLimit   = 190
)

// DefaultFeeSatsPerByte is the default fee rate applied to outgoing sends.
var DefaultFeeSatsPerByte = decimal.RequireFromString("2.01")

// DustXec is DustSats expressed in native display units.
var DustXec = decimal.New(DustSats, -Decimals)
