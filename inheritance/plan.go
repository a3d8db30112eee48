// Package inheritance manages dead-man-switch plans: a beneficiary address,
// an inactivity window, and an optional message, persisted per wallet
// address alongside an activity timestamp that each wallet action refreshes.
package inheritance

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Plan describes where funds should go if the wallet owner stays inactive
// for the configured number of days.
type Plan struct {
	BeneficiaryAddress string `json:"beneficiaryAddress"`
	InactivityDays     uint32 `json:"inactivityDays"`
	Message            string `json:"message,omitempty"`
}

// Validate checks the plan against the network parameters. The beneficiary
// must be a decodable address for that network and the inactivity window at
// least one day.
func (p *Plan) Validate(params *chaincfg.Params) error {
	if p == nil {
		return ErrNilPlan
	}
	addr, err := btcutil.DecodeAddress(p.BeneficiaryAddress, params)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBeneficiary, p.BeneficiaryAddress, err)
	}
	if !addr.IsForNet(params) {
		return fmt.Errorf("%w: %s: wrong network", ErrInvalidBeneficiary, p.BeneficiaryAddress)
	}
	if p.InactivityDays == 0 {
		return ErrInvalidInactivityPeriod
	}
	return nil
}

// InactivityWindow returns the plan's window as a duration.
func (p *Plan) InactivityWindow() time.Duration {
	return time.Duration(p.InactivityDays) * 24 * time.Hour
}

// Status reports whether a plan's inactivity window has elapsed.
type Status struct {
	Triggered bool
	Remaining time.Duration
}

// CheckStatus evaluates a plan against the last recorded activity. A plan
// triggers once now is at or past lastActivity plus the inactivity window.
func CheckStatus(plan *Plan, lastActivity, now time.Time) (*Status, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	deadline := lastActivity.Add(plan.InactivityWindow())
	if !now.Before(deadline) {
		return &Status{Triggered: true}, nil
	}
	return &Status{Remaining: deadline.Sub(now)}, nil
}
