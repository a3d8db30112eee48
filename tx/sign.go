package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// InputSigner is the wallet's opaque signing capability. Implementations
// produce a complete signature script for input idx of t, spending prevOut.
// The concrete key material never crosses this boundary, so hardware-backed
// and software signers are interchangeable.
type InputSigner interface {
	SignInput(t *wire.MsgTx, idx int, prevOut *wire.TxOut) ([]byte, error)
}

// Finalized is a fully signed, serialized transaction ready for relay.
type Finalized struct {
	TxID string
	Hex  string
}

// SignAndFinalize applies the signing capability to every input of the plan,
// in plan order, and serializes the result.
//
// Finalization is all-or-nothing: every input must yield a signature script
// or the whole attempt fails with ErrSigningFailed. There is no mechanism to
// emit a partially signed transaction.
func SignAndFinalize(plan *Plan, signer InputSigner) (*Finalized, error) {
	if plan == nil || len(plan.Inputs) == 0 || len(plan.Outputs) == 0 {
		return nil, fmt.Errorf("%w: empty plan", ErrInvalidPlan)
	}
	if signer == nil {
		return nil, fmt.Errorf("%w: nil signer", ErrSigningFailed)
	}

	msg := wire.NewMsgTx(wire.TxVersion)
	for _, in := range plan.Inputs {
		prevHash, err := chainhash.NewHashFromStr(in.UTXO.TxID)
		if err != nil {
			return nil, fmt.Errorf("%w: txid %s: %w", ErrInvalidPlan, in.UTXO.TxID, err)
		}
		msg.AddTxIn(wire.NewTxIn(wire.NewOutPoint(prevHash, in.UTXO.Vout), nil, nil))
	}
	for _, out := range plan.Outputs {
		msg.AddTxOut(wire.NewTxOut(int64(out.Value), out.PkScript))
	}

	// Signing order == plan order; the signature for input i commits to the
	// outpoint added at index i above.
	for i, in := range plan.Inputs {
		sigScript, err := signer.SignInput(msg, i, in.PrevOut)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d (%s): %w", ErrSigningFailed, i, in.UTXO.TxID, err)
		}
		if len(sigScript) == 0 {
			return nil, fmt.Errorf("%w: input %d (%s): empty signature script",
				ErrSigningFailed, i, in.UTXO.TxID)
		}
		msg.TxIn[i].SignatureScript = sigScript
	}
	for i, in := range msg.TxIn {
		if len(in.SignatureScript) == 0 {
			return nil, fmt.Errorf("%w: input %d unsigned", ErrSigningFailed, i)
		}
	}

	var buf bytes.Buffer
	if err := msg.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("%w: serialize: %w", ErrSigningFailed, err)
	}

	return &Finalized{
		TxID: msg.TxHash().String(),
		Hex:  hex.EncodeToString(buf.Bytes()),
	}, nil
}
