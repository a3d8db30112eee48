package tx

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// RawTxFetcher fetches the full serialized previous transaction for a txid,
// as a hex string. Legacy inputs are proven against the entire previous
// transaction, not merely the referenced output, so the whole thing is
// required.
type RawTxFetcher interface {
	RawTxHex(ctx context.Context, txid string) (string, error)
}

// RawTxFetcherFunc adapts a function to the RawTxFetcher interface.
type RawTxFetcherFunc func(ctx context.Context, txid string) (string, error)

// RawTxHex calls f.
func (f RawTxFetcherFunc) RawTxHex(ctx context.Context, txid string) (string, error) {
	return f(ctx, txid)
}

// PlanInput pairs a selected UTXO with its fully fetched previous
// transaction and the specific output being spent.
type PlanInput struct {
	UTXO    UTXO
	PrevTx  *wire.MsgTx
	PrevOut *wire.TxOut
}

// PlanOutput is one output of an unsigned plan. PkScript is resolved from
// Address at build time so that signing never touches address decoding.
type PlanOutput struct {
	Address  string
	Value    uint64
	PkScript []byte
}

// Plan is a fully resolved unsigned transaction: inputs in selection order,
// outputs in [recipient, change?] order, and the effective fee in satoshis.
type Plan struct {
	Inputs  []PlanInput
	Outputs []PlanOutput
	Fee     uint64
}

// ChangeValue returns the value of the change output, or 0 if the plan has
// none.
func (p *Plan) ChangeValue() uint64 {
	if len(p.Outputs) == 2 {
		return p.Outputs[1].Value
	}
	return 0
}

// FetchPrevInputs fetches the previous transaction for every selected UTXO,
// strictly sequentially and preserving selection order so that signing
// indices stay aligned with input indices.
//
// Each fetched payload must be valid hexadecimal of even length and must
// deserialize to a transaction that actually contains the referenced output
// with the value the UTXO reported. Any single failure aborts the whole
// fetch; there is no fallback to a partial input set.
func FetchPrevInputs(ctx context.Context, utxos []UTXO, fetch RawTxFetcher) ([]PlanInput, error) {
	inputs := make([]PlanInput, 0, len(utxos))
	for _, u := range utxos {
		rawHex, err := fetch.RawTxHex(ctx, u.TxID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPrevTxFetch, u.TxID, err)
		}

		// hex.DecodeString rejects both non-hex characters and odd length.
		raw, err := hex.DecodeString(rawHex)
		if err != nil || len(raw) == 0 {
			return nil, fmt.Errorf("%w: %s: not even-length hex", ErrInvalidRawTx, u.TxID)
		}

		prev := &wire.MsgTx{}
		if err := prev.Deserialize(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRawTx, u.TxID, err)
		}
		if int(u.Vout) >= len(prev.TxOut) {
			return nil, fmt.Errorf("%w: %s: vout %d out of range (%d outputs)",
				ErrInvalidRawTx, u.TxID, u.Vout, len(prev.TxOut))
		}

		prevOut := prev.TxOut[u.Vout]
		if prevOut.Value != int64(u.Value) {
			return nil, fmt.Errorf("%w: %s: output %d holds %d sats, UTXO reported %d",
				ErrInvalidRawTx, u.TxID, u.Vout, prevOut.Value, u.Value)
		}

		inputs = append(inputs, PlanInput{UTXO: u, PrevTx: prev, PrevOut: prevOut})
	}
	return inputs, nil
}

// Builder assembles unsigned transaction plans for one network.
type Builder struct {
	params *chaincfg.Params
}

// NewBuilder creates a Builder for the given network parameters.
func NewBuilder(params *chaincfg.Params) *Builder {
	return &Builder{params: params}
}

// BuildPlan combines a coin selection and its fetched previous transactions
// into an unsigned plan paying amountSats to recipient.
//
// Output order is always [recipient, change?]. A change output back to
// changeAddress exists iff the surplus after amount and fee is at least
// DustThreshold; a smaller surplus is absorbed into the fee, and Plan.Fee
// reflects the fee actually paid.
func (b *Builder) BuildPlan(sel *Selection, inputs []PlanInput, recipient string, amountSats uint64, changeAddress string) (*Plan, error) {
	if sel == nil || len(sel.UTXOs) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrInvalidPlan)
	}
	if len(inputs) != len(sel.UTXOs) {
		return nil, fmt.Errorf("%w: %d inputs for %d selected UTXOs",
			ErrInvalidPlan, len(inputs), len(sel.UTXOs))
	}
	if sel.Total < amountSats+sel.Fee {
		return nil, fmt.Errorf("%w: selection holds %d sats, need %d + %d fee",
			ErrInsufficientFunds, sel.Total, amountSats, sel.Fee)
	}

	recipientScript, err := b.payToAddrScript(recipient)
	if err != nil {
		return nil, err
	}
	outputs := []PlanOutput{{Address: recipient, Value: amountSats, PkScript: recipientScript}}

	fee := sel.Total - amountSats
	if change := sel.Total - amountSats - sel.Fee; change >= DustThreshold {
		changeScript, err := b.payToAddrScript(changeAddress)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, PlanOutput{Address: changeAddress, Value: change, PkScript: changeScript})
		fee = sel.Fee
	}

	return &Plan{Inputs: inputs, Outputs: outputs, Fee: fee}, nil
}

// payToAddrScript decodes an address for the builder's network and returns
// its locking script.
func (b *Builder) payToAddrScript(address string) ([]byte, error) {
	addr, err := btcutil.DecodeAddress(address, b.params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAddress, address, err)
	}
	if !addr.IsForNet(b.params) {
		return nil, fmt.Errorf("%w: %s: wrong network", ErrInvalidAddress, address)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAddress, address, err)
	}
	return script, nil
}
