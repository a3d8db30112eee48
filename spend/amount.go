package spend

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SatoshisPerBTC is the number of satoshis in one bitcoin.
	SatoshisPerBTC = 100_000_000

	// MaxSatoshis is the total supply cap. Amounts beyond it are never
	// representable and are rejected before any arithmetic can overflow.
	MaxSatoshis = 21_000_000 * SatoshisPerBTC
)

// ParseAmount converts a decimal BTC string such as "0.0015" to satoshis.
// Parsing is exact: the string is split on the decimal point and both halves
// are parsed as integers, so no floating-point rounding can creep in.
// At most eight fractional digits are accepted, and amounts above the
// 21 million BTC supply cap are rejected.
func ParseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrAmountNotNumeric)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: %q", ErrAmountNotPositive, s)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrAmountNotNumeric, s)
	}
	if len(frac) > 8 {
		return 0, fmt.Errorf("%w: %q has more than 8 decimal places", ErrAmountNotNumeric, s)
	}

	var btc uint64
	if whole != "" {
		v, err := strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrAmountNotNumeric, s)
		}
		btc = v
	}

	var sats uint64
	if frac != "" {
		// Right-pad to 8 digits so "0.1" and "0.10000000" agree.
		v, err := strconv.ParseUint(frac+strings.Repeat("0", 8-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrAmountNotNumeric, s)
		}
		sats = v
	}

	if btc > MaxSatoshis/SatoshisPerBTC {
		return 0, fmt.Errorf("%w: %q exceeds %d BTC", ErrAmountNotNumeric, s, MaxSatoshis/SatoshisPerBTC)
	}
	total := btc*SatoshisPerBTC + sats
	if total > MaxSatoshis {
		return 0, fmt.Errorf("%w: %q exceeds %d BTC", ErrAmountNotNumeric, s, MaxSatoshis/SatoshisPerBTC)
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: %q", ErrAmountNotPositive, s)
	}
	return total, nil
}
