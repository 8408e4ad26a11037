package fee

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xecwallet/sendd/internal/chronik"
	"github.com/xecwallet/sendd/internal/xec"
)

type fakeSource struct {
	utxos []chronik.Utxo
	err   error
}

func (f *fakeSource) Utxos(_ context.Context, _ string) ([]chronik.Utxo, error) {
	return f.utxos, f.err
}

func TestEstimateBytes(t *testing.T) {
	assert.Equal(t, int64(226), EstimateBytes(1, 2))
	assert.Equal(t, int64(192), EstimateBytes(1, 1))
	assert.Equal(t, int64(374), EstimateBytes(2, 2))
	assert.Equal(t, int64(10), EstimateBytes(0, 0))
}

func TestEstimateFeeSats(t *testing.T) {
	rate := xec.DefaultFeeSatsPerByte

	// 226 bytes * 2.01 = 454.26, rounded up.
	assert.Equal(t, int64(455), EstimateFeeSats(rate, 1, 2))
	// 374 bytes * 2.01 = 751.74.
	assert.Equal(t, int64(752), EstimateFeeSats(rate, 2, 2))
	// Whole-number rate needs no rounding: 226 * 2.
	assert.Equal(t, int64(452), EstimateFeeSats(decimal.NewFromInt(2), 1, 2))
}

func TestMaxSendable(t *testing.T) {
	source := &fakeSource{utxos: []chronik.Utxo{
		{TxID: "aa", OutIdx: 0, Value: 100000},
		{TxID: "bb", OutIdx: 1, Value: 50000},
	}}
	calc := NewCalculator(source, xec.DefaultFeeSatsPerByte)

	got, err := calc.MaxSendable(context.Background(), "ecash:qpatql05s9jfavnu0tv6lkjjk25n6tmj9gkpyrlwu8")
	require.NoError(t, err)

	// 150000 sats minus 752 sats fee for a 2-in 2-out sweep.
	assert.True(t, got.Equal(decimal.RequireFromString("1492.48")), "got %s", got)
}

func TestMaxSendableFlooredAtZero(t *testing.T) {
	source := &fakeSource{utxos: []chronik.Utxo{
		{TxID: "aa", OutIdx: 0, Value: 100},
	}}
	calc := NewCalculator(source, xec.DefaultFeeSatsPerByte)

	got, err := calc.MaxSendable(context.Background(), "addr")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestMaxSendableNoOutputs(t *testing.T) {
	calc := NewCalculator(&fakeSource{}, xec.DefaultFeeSatsPerByte)

	got, err := calc.MaxSendable(context.Background(), "addr")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestMaxSendableSourceError(t *testing.T) {
	calc := NewCalculator(&fakeSource{err: errors.New("indexer unreachable")}, xec.DefaultFeeSatsPerByte)

	_, err := calc.MaxSendable(context.Background(), "addr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgMaxCalcFailed)
}
