// Package tx implements fee estimation, coin selection, and the construction
// and signing of legacy (non-segwit) single-signature Bitcoin transactions.
package tx

// UTXO represents a confirmed or pending unspent transaction output owned by
// the wallet. Instances are immutable once fetched from the chain service.
type UTXO struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	Value     uint64 `json:"value"` // satoshis
	Confirmed bool   `json:"confirmed"`
}

// Selection is the result of coin selection. The UTXO order is selection
// order and is load-bearing: it fixes the input indices used during signing.
type Selection struct {
	UTXOs []UTXO
	Total uint64 // satoshis across all selected UTXOs
	Fee   uint64 // estimated fee the selection was made against
}
