package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Season string

const (
	SeasonPlanting   Season = "planting"
	SeasonGrowing    Season = "growing"
	SeasonHarvesting Season = "harvesting"
	SeasonOff        Season = "off_season"
	SeasonPeak       Season = "peak"
	SeasonLow        Season = "low"
)

type DemandLevel string

const (
	DemandLow    DemandLevel = "low"
	DemandNormal DemandLevel = "normal"
	DemandHigh   DemandLevel = "high"
)

// Location is a WGS84 point used for geofence rule matching.
type Location struct {
	Lat decimal.Decimal `json:"lat"`
	Lng decimal.Decimal `json:"lng"`
}

var (
	one            = decimal.NewFromInt(1)
	maxMultiplier  = decimal.NewFromInt(10)
	maxDemandMult  = decimal.NewFromInt(2)
	minutesPattern = "15:04"
)

// PricingRule is a scoped, prioritized price override. A rule applies to
// one equipment item, one equipment type, or globally (neither set).
// Optional constraints — date range, time-of-day range, day-of-week set
// and a lat/long bounding box — are AND-ed; an unset constraint imposes
// no restriction.
type PricingRule struct {
	ID              int32  `json:"id"`
	Name            string `json:"name"`
	EquipmentID     *int32 `json:"equipment_id,omitempty"`
	EquipmentTypeID *int32 `json:"equipment_type_id,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	// Time-of-day bounds, "HH:MM" 24h. Zero-padded so plain string
	// comparison orders correctly.
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	// Days the rule applies, 0=Monday .. 6=Sunday. Empty means every day.
	DaysOfWeek []int `json:"days_of_week,omitempty"`

	LatMin *decimal.Decimal `json:"latitude_min,omitempty"`
	LatMax *decimal.Decimal `json:"latitude_max,omitempty"`
	LngMin *decimal.Decimal `json:"longitude_min,omitempty"`
	LngMax *decimal.Decimal `json:"longitude_max,omitempty"`

	HourlyMultiplier  decimal.Decimal `json:"hourly_multiplier"`
	DailyMultiplier   decimal.Decimal `json:"daily_multiplier"`
	WeeklyMultiplier  decimal.Decimal `json:"weekly_multiplier"`
	MonthlyMultiplier decimal.Decimal `json:"monthly_multiplier"`

	FixedHourlyRate  *decimal.Decimal `json:"fixed_hourly_rate,omitempty"`
	FixedDailyRate   *decimal.Decimal `json:"fixed_daily_rate,omitempty"`
	FixedWeeklyRate  *decimal.Decimal `json:"fixed_weekly_rate,omitempty"`
	FixedMonthlyRate *decimal.Decimal `json:"fixed_monthly_rate,omitempty"`

	Priority  int32     `json:"priority"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Weekday converts a timestamp's weekday to the 0=Monday convention used
// by DaysOfWeek.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsApplicable checks every constraint of the rule against the given
// equipment, date, optional time of day and optional location.
func (r *PricingRule) IsApplicable(eq *Equipment, date time.Time, at *time.Time, loc *Location) bool {
	if r.EquipmentID != nil && *r.EquipmentID != eq.ID {
		return false
	}
	if r.EquipmentTypeID != nil && *r.EquipmentTypeID != eq.EquipmentTypeID {
		return false
	}

	day := dateOnly(date)
	if r.StartDate != nil && day.Before(dateOnly(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && day.After(dateOnly(*r.EndDate)) {
		return false
	}

	if at != nil {
		clock := at.Format(minutesPattern)
		if r.StartTime != nil && clock < *r.StartTime {
			return false
		}
		if r.EndTime != nil && clock > *r.EndTime {
			return false
		}
	}

	if len(r.DaysOfWeek) > 0 {
		matched := false
		for _, d := range r.DaysOfWeek {
			if d == Weekday(date) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if loc != nil {
		if r.LatMin != nil && loc.Lat.LessThan(*r.LatMin) {
			return false
		}
		if r.LatMax != nil && loc.Lat.GreaterThan(*r.LatMax) {
			return false
		}
		if r.LngMin != nil && loc.Lng.LessThan(*r.LngMin) {
			return false
		}
		if r.LngMax != nil && loc.Lng.GreaterThan(*r.LngMax) {
			return false
		}
	}

	return true
}

// MultiplierFor returns the rule's multiplier for the rate type.
func (r *PricingRule) MultiplierFor(rt RateType) decimal.Decimal {
	switch rt {
	case RateTypeHourly:
		return r.HourlyMultiplier
	case RateTypeDaily:
		return r.DailyMultiplier
	case RateTypeWeekly:
		return r.WeeklyMultiplier
	case RateTypeMonthly:
		return r.MonthlyMultiplier
	}
	return one
}

// FixedRateFor returns the rule's fixed-rate override for the rate type,
// or nil when the multiplier path applies.
func (r *PricingRule) FixedRateFor(rt RateType) *decimal.Decimal {
	switch rt {
	case RateTypeHourly:
		return r.FixedHourlyRate
	case RateTypeDaily:
		return r.FixedDailyRate
	case RateTypeWeekly:
		return r.FixedWeeklyRate
	case RateTypeMonthly:
		return r.FixedMonthlyRate
	}
	return nil
}

// ApplyDefaults fills multipliers left at zero with the neutral 1.0,
// so a rule created with only a fixed rate or a partial multiplier set
// passes validation.
func (r *PricingRule) ApplyDefaults() {
	for _, m := range []*decimal.Decimal{&r.HourlyMultiplier, &r.DailyMultiplier, &r.WeeklyMultiplier, &r.MonthlyMultiplier} {
		if m.IsZero() {
			*m = one
		}
	}
}

// Validate enforces the write-time invariants: multipliers in (0, 10],
// fixed rates positive, coherent date range.
func (r *PricingRule) Validate() error {
	for _, m := range []decimal.Decimal{r.HourlyMultiplier, r.DailyMultiplier, r.WeeklyMultiplier, r.MonthlyMultiplier} {
		if !m.IsPositive() || m.GreaterThan(maxMultiplier) {
			return ErrMultiplierOutOfRange
		}
	}
	for _, f := range []*decimal.Decimal{r.FixedHourlyRate, r.FixedDailyRate, r.FixedWeeklyRate, r.FixedMonthlyRate} {
		if f != nil && !f.IsPositive() {
			return ErrInvalidRate
		}
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return ErrInvalidDateRange
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return ErrInvalidDayOfWeek
		}
	}
	return nil
}

// SeasonalPricing adjusts rates for an equipment type over a date range.
// Hourly pricing uses the hourly multiplier and fixed rate; every other
// granularity uses the daily ones.
type SeasonalPricing struct {
	ID              int32  `json:"id"`
	Name            string `json:"name"`
	Season          Season `json:"season"`
	EquipmentTypeID int32  `json:"equipment_type_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	HourlyMultiplier decimal.Decimal  `json:"hourly_multiplier"`
	DailyMultiplier  decimal.Decimal  `json:"daily_multiplier"`
	FixedHourlyRate  *decimal.Decimal `json:"fixed_hourly_rate,omitempty"`
	FixedDailyRate   *decimal.Decimal `json:"fixed_daily_rate,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// InEffect reports whether the window covers the date; both boundary
// days are included.
func (s *SeasonalPricing) InEffect(date time.Time) bool {
	day := dateOnly(date)
	return !day.Before(dateOnly(s.StartDate)) && !day.After(dateOnly(s.EndDate))
}

func (s *SeasonalPricing) MultiplierFor(rt RateType) decimal.Decimal {
	if rt == RateTypeHourly {
		return s.HourlyMultiplier
	}
	return s.DailyMultiplier
}

func (s *SeasonalPricing) FixedRateFor(rt RateType) *decimal.Decimal {
	switch rt {
	case RateTypeHourly:
		return s.FixedHourlyRate
	case RateTypeDaily:
		return s.FixedDailyRate
	}
	return nil
}

// ApplyDefaults fills multipliers left at zero with the neutral 1.0.
func (s *SeasonalPricing) ApplyDefaults() {
	if s.HourlyMultiplier.IsZero() {
		s.HourlyMultiplier = one
	}
	if s.DailyMultiplier.IsZero() {
		s.DailyMultiplier = one
	}
}

func (s *SeasonalPricing) Validate() error {
	for _, m := range []decimal.Decimal{s.HourlyMultiplier, s.DailyMultiplier} {
		if !m.IsPositive() || m.GreaterThan(maxMultiplier) {
			return ErrMultiplierOutOfRange
		}
	}
	if s.EndDate.Before(s.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// DemandPricing maps a trailing booking count for an equipment type to
// one of three multiplier tiers.
type DemandPricing struct {
	ID              int32 `json:"id"`
	EquipmentTypeID int32 `json:"equipment_type_id"`

	LowThreshold  int32 `json:"low_demand_threshold"`
	HighThreshold int32 `json:"high_demand_threshold"`

	LowMultiplier    decimal.Decimal `json:"low_demand_multiplier"`
	NormalMultiplier decimal.Decimal `json:"normal_demand_multiplier"`
	HighMultiplier   decimal.Decimal `json:"high_demand_multiplier"`

	WindowDays int32 `json:"demand_calculation_days"`

	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// LevelFor classifies a trailing booking count: at or below the low
// threshold is low demand, at or above the high threshold is high.
func (d *DemandPricing) LevelFor(count int32) DemandLevel {
	switch {
	case count <= d.LowThreshold:
		return DemandLow
	case count >= d.HighThreshold:
		return DemandHigh
	default:
		return DemandNormal
	}
}

func (d *DemandPricing) MultiplierFor(level DemandLevel) decimal.Decimal {
	switch level {
	case DemandLow:
		return d.LowMultiplier
	case DemandHigh:
		return d.HighMultiplier
	default:
		return d.NormalMultiplier
	}
}

// ApplyDefaults fills multipliers left at zero with the neutral 1.0
// and an unset window with the seven-day default.
func (d *DemandPricing) ApplyDefaults() {
	for _, m := range []*decimal.Decimal{&d.LowMultiplier, &d.NormalMultiplier, &d.HighMultiplier} {
		if m.IsZero() {
			*m = one
		}
	}
	if d.WindowDays == 0 {
		d.WindowDays = 7
	}
}

func (d *DemandPricing) Validate() error {
	for _, m := range []decimal.Decimal{d.LowMultiplier, d.NormalMultiplier, d.HighMultiplier} {
		if !m.IsPositive() || m.GreaterThan(maxDemandMult) {
			return ErrMultiplierOutOfRange
		}
	}
	if d.HighThreshold <= d.LowThreshold {
		return ErrInvalidThresholds
	}
	if d.WindowDays <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

// PricingHistory is the per-day, per-equipment ledger of the rate in
// effect. One row per (equipment, effective date); re-running the update
// for the same day overwrites the row.
type PricingHistory struct {
	ID            int32           `json:"id"`
	EquipmentID   int32           `json:"equipment_id"`
	PricingRuleID *int32          `json:"pricing_rule_id,omitempty"`
	BaseRate      decimal.Decimal `json:"base_rate"`
	AdjustedRate  decimal.Decimal `json:"adjusted_rate"`
	Multiplier    decimal.Decimal `json:"multiplier"`
	RateType      RateType        `json:"rate_type"`
	DemandLevel   DemandLevel     `json:"demand_level"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedOn     time.Time       `json:"created_on"`
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
