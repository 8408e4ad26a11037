package sendform

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xecwallet/sendd/internal/address"
	"github.com/xecwallet/sendd/internal/amount"
	"github.com/xecwallet/sendd/internal/batch"
	"github.com/xecwallet/sendd/internal/broadcast"
)

// buildRequest applies the events and assembles a request the way Submit
// would, without dispatching it.
func buildRequest(t *testing.T, rate *decimal.Decimal, events ...Event) (*broadcast.SendRequest, error) {
	t.Helper()
	ctx := context.Background()
	form := newTestForm(t, &fakeBroadcaster{}, rate)
	for _, ev := range events {
		require.NoError(t, form.Apply(ctx, ev))
	}

	form.mu.Lock()
	defer form.mu.Unlock()
	return form.buildRequestLocked()
}

func TestBuildSingleRecipient(t *testing.T) {
	req, err := buildRequest(t, nil,
		SetAddress{Value: validAddr},
		SetAmount{Value: "10"},
	)
	require.NoError(t, err)

	assert.Equal(t, broadcast.ModeSingle, req.Mode)
	require.Len(t, req.Recipients, 1)
	assert.Equal(t, validAddr, req.Recipients[0].Address)
	assert.Equal(t, int64(1000), req.Recipients[0].AmountSats)
	assert.Nil(t, req.Message)
	assert.Nil(t, req.Metadata)
	assert.True(t, req.FeeRatePerByte.Equal(decimal.RequireFromString("2.01")))

	_, parseErr := uuid.Parse(req.RequestID)
	assert.NoError(t, parseErr)
}

// Each build produces a fresh request identity; nothing is reused across
// attempts.
func TestBuildRequestIDUniquePerAttempt(t *testing.T) {
	ctx := context.Background()
	form := newTestForm(t, &fakeBroadcaster{}, nil)
	require.NoError(t, form.Apply(ctx, SetAddress{Value: validAddr}))
	require.NoError(t, form.Apply(ctx, SetAmount{Value: "10"}))

	form.mu.Lock()
	first, err1 := form.buildRequestLocked()
	second, err2 := form.buildRequestLocked()
	form.mu.Unlock()

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

// The dispatched address is the query-stripped one even though the form
// stores the raw input.
func TestBuildStripsQuerySuffix(t *testing.T) {
	req, err := buildRequest(t, nil,
		SetAddress{Value: validAddr + "?amount=25"},
	)
	require.NoError(t, err)

	require.Len(t, req.Recipients, 1)
	assert.Equal(t, validAddr, req.Recipients[0].Address)
	assert.Equal(t, int64(2500), req.Recipients[0].AmountSats)
}

func TestBuildFiatAmount(t *testing.T) {
	rate := decimal.RequireFromString("0.5")
	req, err := buildRequest(t, &rate,
		SetAddress{Value: validAddr},
		SetCurrency{Code: "USD"},
		SetAmount{Value: "30"},
	)
	require.NoError(t, err)

	// 30 USD at 0.5 USD/XEC is 60 XEC.
	require.Len(t, req.Recipients, 1)
	assert.Equal(t, int64(6000), req.Recipients[0].AmountSats)
}

func TestBuildMulti(t *testing.T) {
	req, err := buildRequest(t, nil,
		SetMode{Multi: true},
		SetBatch{Value: validAddr + ",22\n" + validAddr2 + ",5.5"},
		// A message left over from single mode stays off the wire.
		SetMessage{Value: "hello"},
	)
	require.NoError(t, err)

	assert.Equal(t, broadcast.ModeMulti, req.Mode)
	require.Len(t, req.Recipients, 2)
	assert.Equal(t, validAddr, req.Recipients[0].Address)
	assert.Equal(t, int64(2200), req.Recipients[0].AmountSats)
	assert.Equal(t, validAddr2, req.Recipients[1].Address)
	assert.Equal(t, int64(550), req.Recipients[1].AmountSats)
	assert.Nil(t, req.Message, "multi-recipient requests never carry a message")
}

func TestBuildSingleWithMessage(t *testing.T) {
	req, err := buildRequest(t, nil,
		SetAddress{Value: validAddr},
		SetAmount{Value: "10"},
		SetMessage{Value: "thanks for lunch"},
	)
	require.NoError(t, err)

	require.NotNil(t, req.Message)
	assert.Equal(t, "thanks for lunch", req.Message.Text)
	assert.False(t, req.Message.Encrypted)
}

func TestBuildSingleWithEncryptedMessage(t *testing.T) {
	long := strings.Repeat("z", 150)
	req, err := buildRequest(t, nil,
		SetEncrypted{Encrypted: true},
		SetAddress{Value: validAddr},
		SetAmount{Value: "10"},
		SetMessage{Value: long},
	)
	require.NoError(t, err)

	require.NotNil(t, req.Message)
	assert.True(t, req.Message.Encrypted)
	assert.Len(t, req.Message.Text, 94)
}

func TestBuildAirdropMetadata(t *testing.T) {
	tokenID := "50d8292c6255cda7afc6c8566fed3cf42a2794e9619740fe8f4c95431271410e"
	req, err := buildRequest(t, nil,
		SetMode{Multi: true},
		SetAirdrop{TokenID: tokenID},
		SetBatch{Value: validAddr + ",22"},
	)
	require.NoError(t, err)

	require.NotNil(t, req.Metadata)
	assert.Equal(t, tokenID, req.Metadata.AirdropTokenID)
}

func TestBuildValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		events     []Event
		wantField  string
		wantReason string
	}{
		{
			name: "invalid single address",
			events: []Event{
				SetAddress{Value: invalidAddr},
				SetAmount{Value: "10"},
			},
			wantField:  "address",
			wantReason: address.MsgInvalidAddress,
		},
		{
			name: "blank single address",
			events: []Event{
				SetAmount{Value: "10"},
			},
			wantField:  "address",
			wantReason: address.MsgInvalidAddress,
		},
		{
			name: "bad amount",
			events: []Event{
				SetAddress{Value: validAddr},
				SetAmount{Value: "0"},
			},
			wantField:  "amount",
			wantReason: amount.MsgNotPositive,
		},
		{
			name: "missing amount",
			events: []Event{
				SetAddress{Value: validAddr},
			},
			wantField:  "amount",
			wantReason: amount.MsgNotANumber,
		},
		{
			name: "bad batch",
			events: []Event{
				SetMode{Multi: true},
				SetBatch{Value: validAddr + ",1"},
			},
			wantField:  "address",
			wantReason: batch.MsgBelowDust,
		},
		{
			name: "empty batch",
			events: []Event{
				SetMode{Multi: true},
			},
			wantField:  "address",
			wantReason: batch.MsgBlankInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := buildRequest(t, nil, tt.events...)
			assert.Nil(t, req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantReason, vErr.Reason)
		})
	}
}
