package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateVSize(t *testing.T) {
	tests := []struct {
		name    string
		inputs  int
		outputs int
		want    uint64
	}{
		{"one in two out", 1, 2, 226},
		{"two in two out", 2, 2, 374},
		{"one in one out", 1, 1, 192},
		{"zero counts", 0, 0, 10},
		{"negative inputs clamp to zero", -1, 2, 0},
		{"negative outputs clamp to zero", 1, -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateVSize(tc.inputs, tc.outputs))
		})
	}
}

func TestEstimateFee(t *testing.T) {
	// (148 + 2*34 + 10) * 10
	assert.Equal(t, uint64(2260), EstimateFee(1, 2, 10))
	// (2*148 + 2*34 + 10) * 10
	assert.Equal(t, uint64(3740), EstimateFee(2, 2, 10))
}

func TestEstimateFeeScalesLinearlyWithRate(t *testing.T) {
	base := EstimateFee(3, 2, 1)
	assert.Equal(t, base*7, EstimateFee(3, 2, 7))
}

func TestEstimateFeeZeroRate(t *testing.T) {
	assert.Equal(t, uint64(0), EstimateFee(5, 2, 0))
}
