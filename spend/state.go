// Package spend orchestrates one send attempt end to end: validation, coin
// selection, plan assembly, signing, and broadcast, reporting progress
// through an observer callback as a coarse state machine.
package spend

// State is the phase of the current send attempt. Exactly one attempt runs
// at a time; observers receive every transition in order.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateFetchingUtxos
	StateSelectingCoins
	StateFetchingPrevTxs
	StateBuilding
	StateSigning
	StateBroadcasting
	StateSucceeded
	StateFailed
)

// String returns the capitalized name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateFetchingUtxos:
		return "FetchingUtxos"
	case StateSelectingCoins:
		return "SelectingCoins"
	case StateFetchingPrevTxs:
		return "FetchingPrevTxs"
	case StateBuilding:
		return "Building"
	case StateSigning:
		return "Signing"
	case StateBroadcasting:
		return "Broadcasting"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
