package inheritance

import "errors"

var (
	// ErrInvalidBeneficiary is returned when the beneficiary address does
	// not decode for the configured network.
	ErrInvalidBeneficiary = errors.New("inheritance: invalid beneficiary address")

	// ErrInvalidInactivityPeriod is returned when the inactivity period is
	// zero days.
	ErrInvalidInactivityPeriod = errors.New("inheritance: inactivity period must be at least one day")

	// ErrPlanNotFound is returned when no plan exists for the address.
	ErrPlanNotFound = errors.New("inheritance: plan not found")

	// ErrNilPlan is returned when a nil plan is passed where one is required.
	ErrNilPlan = errors.New("inheritance: nil plan")
)
