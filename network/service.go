// Package network provides the chain-data collaborator: an interface over a
// remote UTXO/fee/broadcast service plus an HTTP client for esplora-style
// endpoints (mempool.space schema).
package network

import "context"

// Fee tier names reflecting expected confirmation latency.
const (
	TierFastest  = "fastest"
	TierHalfHour = "halfHour"
	TierHour     = "hour"
)

// ChainService is the interface the spend pipeline consumes. It is always
// injected, never hard-wired, so tests and alternative backends can
// substitute their own implementation.
type ChainService interface {
	// ListUnspent returns all unspent outputs for the address, confirmed
	// and unconfirmed alike; callers filter on Confirmed.
	ListUnspent(ctx context.Context, address string) ([]UTXO, error)

	// RecommendedFees returns the current fee tiers in sats/vbyte.
	RecommendedFees(ctx context.Context) (*FeeTiers, error)

	// RawTxHex returns the full serialized transaction as a hex string.
	RawTxHex(ctx context.Context, txid string) (string, error)

	// BroadcastTx submits a raw transaction hex for relay and returns the
	// assigned txid.
	BroadcastTx(ctx context.Context, rawTxHex string) (string, error)

	// BestBlockHeight returns the height of the current chain tip.
	BestBlockHeight(ctx context.Context) (uint64, error)
}

// UTXO is an unspent output as reported by the data service.
type UTXO struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	Value     uint64 `json:"value"` // satoshis
	Confirmed bool   `json:"confirmed"`
}

// FeeTiers holds the recommended fee rates in sats/vbyte, refreshed per send
// attempt and never persisted.
type FeeTiers struct {
	Fastest  uint64 `json:"fastestFee"`
	HalfHour uint64 `json:"halfHourFee"`
	Hour     uint64 `json:"hourFee"`
}

// Rate returns the rate for a tier name and whether the name is known.
func (t *FeeTiers) Rate(tier string) (uint64, bool) {
	switch tier {
	case TierFastest:
		return t.Fastest, true
	case TierHalfHour:
		return t.HalfHour, true
	case TierHour:
		return t.Hour, true
	default:
		return 0, false
	}
}

// KnownTier reports whether name is a recognized fee tier.
func KnownTier(name string) bool {
	return name == TierFastest || name == TierHalfHour || name == TierHour
}
