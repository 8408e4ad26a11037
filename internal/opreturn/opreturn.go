// Package opreturn enforces the character-limit policy for optional
// OP_RETURN messages attached to sends.
package opreturn

import "github.com/xecwallet/sendd/internal/xec"

// Mode selects which character limit applies to a message.
type Mode int

const (
	// Public is a plaintext message on a regular send.
	Public Mode = iota
	// Encrypted is a message encrypted to the recipient; the ciphertext
	// envelope leaves less room, so the limit is tighter.
	Encrypted
	// AirdropPublic is a plaintext message on a send originating from an
	// airdrop distribution, which is granted a larger allowance.
	AirdropPublic
)

// LimitFor returns the maximum character count for a mode.
func LimitFor(m Mode) int {
	switch m {
	case Encrypted:
		return xec.EncryptedMsgCharLimit
	case AirdropPublic:
		return xec.AirdropMsgCharLimit
	default:
		return xec.PublicMsgCharLimit
	}
}

// Prepare applies the mode's limit to text. Over-length input is truncated
// to the limit, not rejected.
func Prepare(text string, m Mode) string {
	limit := LimitFor(m)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
