package tx

import (
	"fmt"
	"sort"
)

// DefaultAssumedOutputs is the output count coin selection budgets fee for:
// one recipient output plus one potential change output.
const DefaultAssumedOutputs = 2

// SelectCoins chooses a subset of confirmed UTXOs sufficient to cover
// targetSats plus the fee the selection itself induces at ratePerVByte.
//
// The algorithm is deterministic and runs in two phases:
//
//  1. Single-input pass: scan in descending value order and return the first
//     UTXO whose value alone covers target + fee(1, assumedOutputs). The fee
//     always budgets for assumedOutputs outputs even when no change output
//     will ultimately be produced; the over-reservation is intentional and
//     must not be renegotiated after the fact.
//  2. Accumulation pass: scan in ascending value order, recomputing the fee
//     for the grown input count after each addition, and stop as soon as the
//     accumulated value covers target + fee(n, assumedOutputs).
//
// Unconfirmed UTXOs never participate. An empty spendable set fails
// immediately with ErrNoSpendableOutputs before any fee computation; an
// exhausted set fails with ErrInsufficientFunds.
func SelectCoins(utxos []UTXO, targetSats, ratePerVByte uint64, assumedOutputs int) (*Selection, error) {
	spendable := make([]UTXO, 0, len(utxos))
	for _, u := range utxos {
		if u.Confirmed {
			spendable = append(spendable, u)
		}
	}
	if len(spendable) == 0 {
		return nil, ErrNoSpendableOutputs
	}
	if assumedOutputs <= 0 {
		assumedOutputs = DefaultAssumedOutputs
	}

	// Phase 1: cheapest possible transaction is a single input.
	sort.Slice(spendable, func(i, j int) bool {
		return spendable[i].Value > spendable[j].Value
	})
	singleFee := EstimateFee(1, assumedOutputs, ratePerVByte)
	for _, u := range spendable {
		if u.Value >= targetSats+singleFee {
			return &Selection{
				UTXOs: []UTXO{u},
				Total: u.Value,
				Fee:   singleFee,
			}, nil
		}
	}

	// Phase 2: accumulate small outputs first, growing the fee with every
	// added input.
	sort.Slice(spendable, func(i, j int) bool {
		return spendable[i].Value < spendable[j].Value
	})
	var (
		selected []UTXO
		total    uint64
	)
	for _, u := range spendable {
		selected = append(selected, u)
		total += u.Value

		fee := EstimateFee(len(selected), assumedOutputs, ratePerVByte)
		if total >= targetSats+fee {
			return &Selection{UTXOs: selected, Total: total, Fee: fee}, nil
		}
	}

	return nil, fmt.Errorf("%w: have %d sats for %d sats plus fee",
		ErrInsufficientFunds, total, targetSats)
}
