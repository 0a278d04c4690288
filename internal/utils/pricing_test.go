package utils

import (
	"testing"
	"time"

	"agrohire-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestDurationHours(t *testing.T) {
	t.Run("Whole days", func(t *testing.T) {
		got := DurationHours(date("2024-06-01"), date("2024-06-03"))
		assert.Equal(t, int32(48), got)
	})

	t.Run("Rounds partial hours up", func(t *testing.T) {
		start := date("2024-06-01")
		end := start.Add(90 * time.Minute)
		assert.Equal(t, int32(2), DurationHours(start, end))
	})

	t.Run("Empty interval", func(t *testing.T) {
		d := date("2024-06-01")
		assert.Equal(t, int32(0), DurationHours(d, d))
	})

	t.Run("Reversed interval", func(t *testing.T) {
		assert.Equal(t, int32(0), DurationHours(date("2024-06-03"), date("2024-06-01")))
	})
}

func TestRateTypeForDuration(t *testing.T) {
	tests := []struct {
		hours    int32
		expected domain.RateType
	}{
		{1, domain.RateTypeDaily},
		{8, domain.RateTypeDaily},
		{9, domain.RateTypeWeekly},
		{168, domain.RateTypeWeekly},
		{169, domain.RateTypeMonthly},
		{2000, domain.RateTypeMonthly},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, RateTypeForDuration(tt.hours))
		})
	}
}

func TestBillableUnits(t *testing.T) {
	t.Run("Hourly counts hours", func(t *testing.T) {
		start := date("2024-06-01")
		units, err := BillableUnits(start, start.Add(5*time.Hour), domain.RateTypeHourly)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), units)
	})

	t.Run("Daily rounds up", func(t *testing.T) {
		units, err := BillableUnits(date("2024-06-01"), date("2024-06-03").Add(time.Hour), domain.RateTypeDaily)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), units)
	})

	t.Run("Short booking still bills one unit", func(t *testing.T) {
		start := date("2024-06-01")
		units, err := BillableUnits(start, start.Add(2*time.Hour), domain.RateTypeWeekly)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), units)
	})

	t.Run("Exactly one week", func(t *testing.T) {
		units, err := BillableUnits(date("2024-06-01"), date("2024-06-08"), domain.RateTypeWeekly)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), units)
	})

	t.Run("Empty interval rejected", func(t *testing.T) {
		d := date("2024-06-01")
		_, err := BillableUnits(d, d, domain.RateTypeDaily)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("Unknown rate type rejected", func(t *testing.T) {
		_, err := BillableUnits(date("2024-06-01"), date("2024-06-02"), domain.RateType("fortnightly"))
		assert.ErrorIs(t, err, domain.ErrInvalidRateType)
	})
}
