package domain

import "errors"

// Validation errors surfaced at write time.
var (
	ErrInvalidRateType      = errors.New("unknown rate type")
	ErrInvalidRate          = errors.New("rate must be positive")
	ErrMultiplierOutOfRange = errors.New("pricing multiplier out of range")
	ErrInvalidDateRange     = errors.New("end date must not precede start date")
	ErrInvalidDayOfWeek     = errors.New("day of week must be in 0..6")
	ErrInvalidThresholds    = errors.New("high threshold must exceed low threshold")
	ErrInvalidWindow        = errors.New("demand window must be positive")
)
