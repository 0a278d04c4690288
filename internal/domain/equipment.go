package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateType string

const (
	RateTypeHourly  RateType = "hourly"
	RateTypeDaily   RateType = "daily"
	RateTypeWeekly  RateType = "weekly"
	RateTypeMonthly RateType = "monthly"
)

// ValidRateType reports whether rt is one of the four billing granularities.
func ValidRateType(rt RateType) bool {
	switch rt {
	case RateTypeHourly, RateTypeDaily, RateTypeWeekly, RateTypeMonthly:
		return true
	}
	return false
}

type EquipmentStatus string

const (
	EquipmentStatusAvailable    EquipmentStatus = "available"
	EquipmentStatusBooked       EquipmentStatus = "booked"
	EquipmentStatusMaintenance  EquipmentStatus = "maintenance"
	EquipmentStatusOutOfService EquipmentStatus = "out_of_service"
)

type EquipmentCategory string

const (
	CategoryTractor    EquipmentCategory = "tractor"
	CategoryHarvester  EquipmentCategory = "harvester"
	CategoryPlanter    EquipmentCategory = "planter"
	CategoryIrrigation EquipmentCategory = "irrigation"
	CategorySprayer    EquipmentCategory = "sprayer"
	CategoryTillage    EquipmentCategory = "tillage"
	CategoryTransport  EquipmentCategory = "transport"
	CategoryOther      EquipmentCategory = "other"
)

// EquipmentType groups equipment for rule, seasonal and demand scoping.
// Its base rates are informational defaults; each equipment item carries
// its own rates.
type EquipmentType struct {
	ID             int32             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       EquipmentCategory `json:"category"`
	BaseDailyRate  decimal.Decimal   `json:"base_daily_rate"`
	BaseHourlyRate decimal.Decimal   `json:"base_hourly_rate"`
	CreatedOn      time.Time         `json:"created_on"`
	UpdatedOn      time.Time         `json:"updated_on"`
}

type Equipment struct {
	ID              int32           `json:"id"`
	Name            string          `json:"name"`
	EquipmentTypeID int32           `json:"equipment_type_id"`
	EquipmentType   *EquipmentType  `json:"equipment_type,omitempty"` // populated on detail fetches
	OwnerID         int32           `json:"owner_id"`
	Description     string          `json:"description"`
	City            string          `json:"city"`
	Country         string          `json:"country"`
	Status          EquipmentStatus `json:"status"`

	// Rates. Daily and hourly are mandatory; weekly and monthly are
	// optional and derived from the daily rate when unset.
	DailyRate   decimal.Decimal  `json:"daily_rate"`
	HourlyRate  decimal.Decimal  `json:"hourly_rate"`
	WeeklyRate  *decimal.Decimal `json:"weekly_rate,omitempty"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

var (
	daysPerWeek  = decimal.NewFromInt(7)
	daysPerMonth = decimal.NewFromInt(30)
)

// BaseRate returns the undiscounted rate for the requested granularity.
// Weekly and monthly rates fall back to daily*7 and daily*30 when the
// equipment does not carry an explicit rate; the derived value is never
// persisted.
func (e *Equipment) BaseRate(rt RateType) (decimal.Decimal, error) {
	switch rt {
	case RateTypeHourly:
		return e.HourlyRate, nil
	case RateTypeDaily:
		return e.DailyRate, nil
	case RateTypeWeekly:
		if e.WeeklyRate != nil {
			return *e.WeeklyRate, nil
		}
		return e.DailyRate.Mul(daysPerWeek).Round(2), nil
	case RateTypeMonthly:
		if e.MonthlyRate != nil {
			return *e.MonthlyRate, nil
		}
		return e.DailyRate.Mul(daysPerMonth).Round(2), nil
	default:
		return decimal.Zero, ErrInvalidRateType
	}
}

// Validate checks the rate invariants enforced at write time.
func (e *Equipment) Validate() error {
	if !e.DailyRate.IsPositive() {
		return ErrInvalidRate
	}
	if !e.HourlyRate.IsPositive() {
		return ErrInvalidRate
	}
	if e.WeeklyRate != nil && !e.WeeklyRate.IsPositive() {
		return ErrInvalidRate
	}
	if e.MonthlyRate != nil && !e.MonthlyRate.IsPositive() {
		return ErrInvalidRate
	}
	return nil
}
