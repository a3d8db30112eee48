package spend

import "errors"

var (
	// ErrBusy is returned when a send attempt is already in flight.
	ErrBusy = errors.New("spend: send already in progress")

	// ErrInvalidAddress is returned when the recipient address does not
	// decode for the configured network.
	ErrInvalidAddress = errors.New("spend: invalid recipient address")

	// ErrAmountNotNumeric is returned when an amount string is not a
	// decimal number.
	ErrAmountNotNumeric = errors.New("spend: amount is not numeric")

	// ErrAmountNotPositive is returned when the amount is zero or negative.
	ErrAmountNotPositive = errors.New("spend: amount must be positive")

	// ErrAmountBelowDust is returned when the amount is below the dust
	// threshold.
	ErrAmountBelowDust = errors.New("spend: amount below dust threshold")

	// ErrInvalidFeeRate is returned when neither a known fee tier nor a
	// positive custom rate is supplied, or the resolved rate is zero.
	ErrInvalidFeeRate = errors.New("spend: invalid fee rate")

	// ErrNoConfirmedUTXOs is returned when the wallet address has no
	// confirmed unspent outputs to draw from.
	ErrNoConfirmedUTXOs = errors.New("spend: no confirmed unspent outputs")
)
