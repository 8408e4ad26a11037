package address

import (
	bchchaincfg "github.com/gcash/bchd/chaincfg"
	"github.com/gcash/bchutil"
)

// User-facing validation messages for the single-recipient address field.
const (
	MsgInvalidAddress = "Invalid address"
	MsgTokenAddress   = "eToken addresses are not supported for XEC sends"
)

// eCash shares the BCH cashaddr encoding with its own checksum prefixes:
// "ecash" for coin addresses and "etoken" for the token address format.
var (
	mainNetParams = withPrefix("ecash")
	tokenParams   = withPrefix("etoken")
)

func withPrefix(prefix string) *bchchaincfg.Params {
	params := bchchaincfg.MainNetParams
	params.CashAddressPrefix = prefix
	return &params
}

// IsValidAddress reports whether s is a well-formed mainnet eCash address,
// with or without the "ecash:" prefix.
func IsValidAddress(s string) bool {
	if s == "" {
		return false
	}
	decoded, err := bchutil.DecodeAddress(s, mainNetParams)
	if err != nil {
		return false
	}
	return isCashAddr(decoded)
}

// IsTokenAddress reports whether s is a well-formed eToken address. Token
// addresses carry the same payload encoding under the "etoken" prefix, so a
// pasted one decodes cleanly here and nowhere else.
func IsTokenAddress(s string) bool {
	if s == "" {
		return false
	}
	decoded, err := bchutil.DecodeAddress(s, tokenParams)
	if err != nil {
		return false
	}
	return isCashAddr(decoded)
}

// isCashAddr reports whether the decode took the cashaddr path. DecodeAddress
// also accepts legacy base58 strings, which would let BTC addresses through
// since the legacy version bytes collide across networks.
func isCashAddr(addr bchutil.Address) bool {
	switch addr.(type) {
	case *bchutil.AddressPubKeyHash, *bchutil.AddressScriptHash:
		return true
	}
	return false
}

// CheckSendAddress validates a single-recipient destination. It returns ""
// when the address is usable, otherwise a user-facing reason. A valid eToken
// address gets the more specific wrong-network message.
func CheckSendAddress(s string) string {
	if IsValidAddress(s) {
		return ""
	}
	if IsTokenAddress(s) {
		return MsgTokenAddress
	}
	return MsgInvalidAddress
}
