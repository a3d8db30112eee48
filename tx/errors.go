package tx

import "errors"

var (
	// ErrNoSpendableOutputs indicates the confirmed UTXO set is empty.
	ErrNoSpendableOutputs = errors.New("tx: no spendable outputs")

	// ErrInsufficientFunds indicates the UTXO set cannot cover amount plus fee.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrInvalidAddress indicates an output address failed to decode for the
	// configured network.
	ErrInvalidAddress = errors.New("tx: invalid address")

	// ErrPrevTxFetch indicates fetching a previous transaction failed.
	ErrPrevTxFetch = errors.New("tx: previous transaction fetch failed")

	// ErrInvalidRawTx indicates fetched previous-transaction bytes are not
	// valid hex, do not deserialize, or do not match the referenced output.
	ErrInvalidRawTx = errors.New("tx: invalid raw transaction")

	// ErrInvalidPlan indicates the unsigned plan is malformed.
	ErrInvalidPlan = errors.New("tx: invalid transaction plan")

	// ErrSigningFailed indicates an input could not be signed.
	ErrSigningFailed = errors.New("tx: signing failed")
)
