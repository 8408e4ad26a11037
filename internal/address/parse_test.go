package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithParams(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantAddress string
		wantQuery   string
		wantAmount  string // "" means no amount extracted
	}{
		{
			name:        "no query suffix",
			raw:         validAddr1,
			wantAddress: validAddr1,
		},
		{
			name:        "amount parameter",
			raw:         validAddr1 + "?amount=25",
			wantAddress: validAddr1,
			wantQuery:   "amount=25",
			wantAmount:  "25",
		},
		{
			name:        "fractional amount",
			raw:         validAddr1 + "?amount=5.5",
			wantAddress: validAddr1,
			wantQuery:   "amount=5.5",
			wantAmount:  "5.5",
		},
		{
			name:        "unrecognized parameters retained but ignored",
			raw:         validAddr1 + "?foo=bar&baz=1",
			wantAddress: validAddr1,
			wantQuery:   "foo=bar&baz=1",
		},
		{
			name:        "amount alongside other parameters",
			raw:         validAddr1 + "?foo=bar&amount=10",
			wantAddress: validAddr1,
			wantQuery:   "foo=bar&amount=10",
			wantAmount:  "10",
		},
		{
			name:        "negative amount ignored",
			raw:         validAddr1 + "?amount=-3",
			wantAddress: validAddr1,
			wantQuery:   "amount=-3",
		},
		{
			name:        "non-numeric amount ignored",
			raw:         validAddr1 + "?amount=abc",
			wantAddress: validAddr1,
			wantQuery:   "amount=abc",
		},
		{
			name:        "malformed query kept verbatim",
			raw:         validAddr1 + "?amount=%zz",
			wantAddress: validAddr1,
			wantQuery:   "amount=%zz",
		},
		{
			name:        "only first question mark splits",
			raw:         validAddr1 + "?amount=7?x=1",
			wantAddress: validAddr1,
			wantQuery:   "amount=7?x=1",
		},
		{
			name: "empty input",
			raw:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWithParams(tt.raw)
			assert.Equal(t, tt.wantAddress, got.Address)
			assert.Equal(t, tt.wantQuery, got.QueryString)
			if tt.wantAmount == "" {
				assert.Nil(t, got.Amount)
			} else {
				require.NotNil(t, got.Amount)
				assert.Equal(t, tt.wantAmount, got.Amount.String())
			}
		})
	}
}

// Any string accepted by the validator parses back unchanged when it carries
// no query suffix.
func TestParseWithParamsRoundTrip(t *testing.T) {
	for _, addr := range []string{validAddr1, validAddr2} {
		require.True(t, IsValidAddress(addr))
		got := ParseWithParams(addr)
		assert.Equal(t, addr, got.Address)
		assert.Empty(t, got.QueryString)
		assert.Nil(t, got.Amount)
	}
}
