package tx

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	recipientAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	changeAddr    = "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"
)

// prevTx builds a serialized previous transaction with the given output
// values and returns its txid and hex. A dummy input keeps the wire encoding
// unambiguous.
func prevTx(t *testing.T, values ...uint64) (string, string) {
	t.Helper()

	msg := wire.NewMsgTx(wire.TxVersion)
	msg.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, 0), []byte{0x51}, nil))
	for _, v := range values {
		msg.AddTxOut(wire.NewTxOut(int64(v), []byte{0x51}))
	}

	var buf bytes.Buffer
	require.NoError(t, msg.Serialize(&buf))
	return msg.TxHash().String(), hex.EncodeToString(buf.Bytes())
}

// rawTxMap is a RawTxFetcher over a fixed txid -> hex map.
func rawTxMap(m map[string]string) RawTxFetcher {
	return RawTxFetcherFunc(func(_ context.Context, txid string) (string, error) {
		raw, ok := m[txid]
		if !ok {
			return "", errors.New("unknown txid")
		}
		return raw, nil
	})
}

func TestFetchPrevInputs(t *testing.T) {
	txidA, hexA := prevTx(t, 100_000)
	txidB, hexB := prevTx(t, 5000, 40_000)

	utxos := []UTXO{
		{TxID: txidA, Vout: 0, Value: 100_000, Confirmed: true},
		{TxID: txidB, Vout: 1, Value: 40_000, Confirmed: true},
	}
	fetch := rawTxMap(map[string]string{txidA: hexA, txidB: hexB})

	inputs, err := FetchPrevInputs(context.Background(), utxos, fetch)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	// Selection order is preserved.
	assert.Equal(t, txidA, inputs[0].UTXO.TxID)
	assert.Equal(t, txidB, inputs[1].UTXO.TxID)
	assert.Equal(t, int64(100_000), inputs[0].PrevOut.Value)
	assert.Equal(t, int64(40_000), inputs[1].PrevOut.Value)
}

func TestFetchPrevInputsFetchError(t *testing.T) {
	utxos := []UTXO{{TxID: "deadbeef", Vout: 0, Value: 1000, Confirmed: true}}

	_, err := FetchPrevInputs(context.Background(), utxos, rawTxMap(nil))
	assert.ErrorIs(t, err, ErrPrevTxFetch)
	assert.Contains(t, err.Error(), "deadbeef")
}

func TestFetchPrevInputsRejectsBadHex(t *testing.T) {
	utxos := []UTXO{{TxID: "a", Vout: 0, Value: 1000, Confirmed: true}}

	tests := []struct {
		name string
		raw  string
	}{
		{"non-hex characters", "zzzz"},
		{"odd length", "abc"},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fetch := rawTxMap(map[string]string{"a": tc.raw})
			_, err := FetchPrevInputs(context.Background(), utxos, fetch)
			assert.ErrorIs(t, err, ErrInvalidRawTx)
		})
	}
}

func TestFetchPrevInputsVoutOutOfRange(t *testing.T) {
	txid, raw := prevTx(t, 100_000)
	utxos := []UTXO{{TxID: txid, Vout: 5, Value: 100_000, Confirmed: true}}

	_, err := FetchPrevInputs(context.Background(), utxos, rawTxMap(map[string]string{txid: raw}))
	assert.ErrorIs(t, err, ErrInvalidRawTx)
}

func TestFetchPrevInputsValueMismatch(t *testing.T) {
	txid, raw := prevTx(t, 100_000)
	utxos := []UTXO{{TxID: txid, Vout: 0, Value: 99_999, Confirmed: true}}

	_, err := FetchPrevInputs(context.Background(), utxos, rawTxMap(map[string]string{txid: raw}))
	assert.ErrorIs(t, err, ErrInvalidRawTx)
}

func TestBuildPlanWithChange(t *testing.T) {
	txid, raw := prevTx(t, 100_000)
	utxos := []UTXO{{TxID: txid, Vout: 0, Value: 100_000, Confirmed: true}}

	sel, err := SelectCoins(utxos, 50_000, 10, DefaultAssumedOutputs)
	require.NoError(t, err)

	inputs, err := FetchPrevInputs(context.Background(), sel.UTXOs, rawTxMap(map[string]string{txid: raw}))
	require.NoError(t, err)

	b := NewBuilder(&chaincfg.MainNetParams)
	plan, err := b.BuildPlan(sel, inputs, recipientAddr, 50_000, changeAddr)
	require.NoError(t, err)

	require.Len(t, plan.Outputs, 2)
	assert.Equal(t, recipientAddr, plan.Outputs[0].Address)
	assert.Equal(t, uint64(50_000), plan.Outputs[0].Value)
	assert.Equal(t, changeAddr, plan.Outputs[1].Address)
	assert.Equal(t, uint64(47_740), plan.Outputs[1].Value)
	assert.Equal(t, uint64(2260), plan.Fee)
	assert.Equal(t, uint64(47_740), plan.ChangeValue())
	assert.NotEmpty(t, plan.Outputs[0].PkScript)
	assert.NotEmpty(t, plan.Outputs[1].PkScript)
}

func TestBuildPlanFoldsDustIntoFee(t *testing.T) {
	// Surplus after amount and fee is 300, below the dust threshold: no
	// change output, fee absorbs the remainder.
	txid, raw := prevTx(t, 52_560)
	utxos := []UTXO{{TxID: txid, Vout: 0, Value: 52_560, Confirmed: true}}

	sel, err := SelectCoins(utxos, 50_000, 10, DefaultAssumedOutputs)
	require.NoError(t, err)

	inputs, err := FetchPrevInputs(context.Background(), sel.UTXOs, rawTxMap(map[string]string{txid: raw}))
	require.NoError(t, err)

	b := NewBuilder(&chaincfg.MainNetParams)
	plan, err := b.BuildPlan(sel, inputs, recipientAddr, 50_000, changeAddr)
	require.NoError(t, err)

	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, uint64(2560), plan.Fee)
	assert.Equal(t, uint64(0), plan.ChangeValue())
}

func TestBuildPlanRejectsInvalidRecipient(t *testing.T) {
	txid, raw := prevTx(t, 100_000)
	utxos := []UTXO{{TxID: txid, Vout: 0, Value: 100_000, Confirmed: true}}

	sel, err := SelectCoins(utxos, 50_000, 10, DefaultAssumedOutputs)
	require.NoError(t, err)
	inputs, err := FetchPrevInputs(context.Background(), sel.UTXOs, rawTxMap(map[string]string{txid: raw}))
	require.NoError(t, err)

	b := NewBuilder(&chaincfg.MainNetParams)
	_, err = b.BuildPlan(sel, inputs, "not-an-address", 50_000, changeAddr)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	// Testnet address on mainnet params.
	_, err = b.BuildPlan(sel, inputs, "mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn", 50_000, changeAddr)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestBuildPlanInputCountMismatch(t *testing.T) {
	txid, _ := prevTx(t, 100_000)
	sel := &Selection{
		UTXOs: []UTXO{{TxID: txid, Vout: 0, Value: 100_000, Confirmed: true}},
		Total: 100_000,
		Fee:   2260,
	}

	b := NewBuilder(&chaincfg.MainNetParams)
	_, err := b.BuildPlan(sel, nil, recipientAddr, 50_000, changeAddr)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}
