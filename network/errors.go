package network

import "errors"

var (
	// ErrConnectionFailed indicates the HTTP request could not be completed.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrInvalidResponse indicates the data service returned a malformed or
	// unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrTxNotFound indicates the requested transaction does not exist.
	ErrTxNotFound = errors.New("network: transaction not found")

	// ErrBroadcastRejected indicates the network rejected the broadcast
	// transaction.
	ErrBroadcastRejected = errors.New("network: broadcast rejected")
)
