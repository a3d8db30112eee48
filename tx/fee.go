package tx

const (
	// DustThreshold is the minimum output value in satoshis. Outputs below
	// this are uneconomical to spend and are folded into the fee instead.
	DustThreshold = 546

	// InputVBytes is the assumed virtual size of one legacy P2PKH input,
	// sized for an uncompressed-key signature script.
	InputVBytes = 148

	// OutputVBytes is the assumed virtual size of one P2PKH output.
	OutputVBytes = 34

	// TxOverheadVBytes is the base transaction overhead (version, in/out
	// counts, locktime).
	TxOverheadVBytes = 10
)

// EstimateVSize returns the estimated virtual size in vbytes of a legacy
// single-signature transaction with the given input and output counts.
//
// This is a deliberate approximation: real signature scripts vary by a few
// bytes per input, so the estimate slightly over- or under-shoots exact
// sizes. Callers must not "correct" it silently; the coin selector and the
// builder both depend on the same model.
func EstimateVSize(inputs, outputs int) uint64 {
	if inputs < 0 || outputs < 0 {
		return 0
	}
	return uint64(inputs)*InputVBytes + uint64(outputs)*OutputVBytes + TxOverheadVBytes
}

// EstimateFee returns the fee in satoshis for a transaction with the given
// shape at ratePerVByte sats/vbyte. The product truncates to an integer.
func EstimateFee(inputs, outputs int, ratePerVByte uint64) uint64 {
	return EstimateVSize(inputs, outputs) * ratePerVByte
}
