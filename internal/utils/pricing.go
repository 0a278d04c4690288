package utils

import (
	"time"

	"agrohire-backend/internal/domain"
)

const (
	hoursPerDay   = 24
	hoursPerWeek  = 168
	hoursPerMonth = 720
)

// DurationHours returns the booking duration rounded up to whole hours.
// Returns 0 when end does not follow start.
func DurationHours(start, end time.Time) int32 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	hours := int32(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// RateTypeForDuration picks the billing granularity for a booking length:
// up to a working day bills daily, up to a week bills weekly, anything
// longer bills monthly.
func RateTypeForDuration(hours int32) domain.RateType {
	switch {
	case hours <= 8:
		return domain.RateTypeDaily
	case hours <= hoursPerWeek:
		return domain.RateTypeWeekly
	default:
		return domain.RateTypeMonthly
	}
}

// BillableUnits converts a booking interval into whole billing units for
// the rate type, rounding up. A non-empty interval always bills at least
// one unit.
func BillableUnits(start, end time.Time, rt domain.RateType) (int64, error) {
	hours := DurationHours(start, end)
	if hours == 0 {
		return 0, domain.ErrInvalidDateRange
	}

	var per int32
	switch rt {
	case domain.RateTypeHourly:
		return int64(hours), nil
	case domain.RateTypeDaily:
		per = hoursPerDay
	case domain.RateTypeWeekly:
		per = hoursPerWeek
	case domain.RateTypeMonthly:
		per = hoursPerMonth
	default:
		return 0, domain.ErrInvalidRateType
	}

	units := hours / per
	if hours%per != 0 {
		units++
	}
	if units < 1 {
		units = 1
	}
	return int64(units), nil
}
