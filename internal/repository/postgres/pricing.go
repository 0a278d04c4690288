package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PricingRuleRepositoryImpl struct {
	db *sql.DB
}

func NewPricingRuleRepository(db *sql.DB) *PricingRuleRepositoryImpl {
	return &PricingRuleRepositoryImpl{db: db}
}

const pricingRuleColumns = `id, name, equipment_id, equipment_type_id, start_date, end_date,
	start_time, end_time, days_of_week, latitude_min, latitude_max, longitude_min, longitude_max,
	hourly_multiplier, daily_multiplier, weekly_multiplier, monthly_multiplier,
	fixed_hourly_rate, fixed_daily_rate, fixed_weekly_rate, fixed_monthly_rate,
	priority, is_active, created_on, updated_on`

func (r *PricingRuleRepositoryImpl) Create(ctx context.Context, rule *domain.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (name, equipment_id, equipment_type_id, start_date, end_date,
			start_time, end_time, days_of_week, latitude_min, latitude_max, longitude_min, longitude_max,
			hourly_multiplier, daily_multiplier, weekly_multiplier, monthly_multiplier,
			fixed_hourly_rate, fixed_daily_rate, fixed_weekly_rate, fixed_monthly_rate,
			priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		rule.Name, rule.EquipmentID, rule.EquipmentTypeID, rule.StartDate, rule.EndDate,
		rule.StartTime, rule.EndTime, daysArray(rule.DaysOfWeek),
		nullDecimal(rule.LatMin), nullDecimal(rule.LatMax), nullDecimal(rule.LngMin), nullDecimal(rule.LngMax),
		rule.HourlyMultiplier, rule.DailyMultiplier, rule.WeeklyMultiplier, rule.MonthlyMultiplier,
		nullDecimal(rule.FixedHourlyRate), nullDecimal(rule.FixedDailyRate),
		nullDecimal(rule.FixedWeeklyRate), nullDecimal(rule.FixedMonthlyRate),
		rule.Priority, rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedOn, &rule.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}
	return nil
}

// ListCandidates returns active rules scoped to the equipment item, its
// type, or neither (global). Ordering is priority descending with newest
// first as the tie-break, so the first applicable rule wins.
func (r *PricingRuleRepositoryImpl) ListCandidates(ctx context.Context, equipmentID, typeID int32) ([]domain.PricingRule, error) {
	query := `
		SELECT ` + pricingRuleColumns + `
		FROM pricing_rules
		WHERE is_active = TRUE
		  AND (equipment_id = $1
			OR equipment_type_id = $2
			OR (equipment_id IS NULL AND equipment_type_id IS NULL))
		ORDER BY priority DESC, created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, equipmentID, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate pricing rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.PricingRule
	for rows.Next() {
		rule, err := scanPricingRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pricing rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func scanPricingRule(row interface{ Scan(...any) error }) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var days pq.Int64Array
	var latMin, latMax, lngMin, lngMax decimal.NullDecimal
	var fixedHourly, fixedDaily, fixedWeekly, fixedMonthly decimal.NullDecimal

	err := row.Scan(
		&rule.ID, &rule.Name, &rule.EquipmentID, &rule.EquipmentTypeID,
		&rule.StartDate, &rule.EndDate, &rule.StartTime, &rule.EndTime, &days,
		&latMin, &latMax, &lngMin, &lngMax,
		&rule.HourlyMultiplier, &rule.DailyMultiplier, &rule.WeeklyMultiplier, &rule.MonthlyMultiplier,
		&fixedHourly, &fixedDaily, &fixedWeekly, &fixedMonthly,
		&rule.Priority, &rule.IsActive, &rule.CreatedOn, &rule.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	for _, d := range days {
		rule.DaysOfWeek = append(rule.DaysOfWeek, int(d))
	}
	rule.LatMin = decimalPtr(latMin)
	rule.LatMax = decimalPtr(latMax)
	rule.LngMin = decimalPtr(lngMin)
	rule.LngMax = decimalPtr(lngMax)
	rule.FixedHourlyRate = decimalPtr(fixedHourly)
	rule.FixedDailyRate = decimalPtr(fixedDaily)
	rule.FixedWeeklyRate = decimalPtr(fixedWeekly)
	rule.FixedMonthlyRate = decimalPtr(fixedMonthly)
	return &rule, nil
}

type SeasonalPricingRepositoryImpl struct {
	db *sql.DB
}

func NewSeasonalPricingRepository(db *sql.DB) *SeasonalPricingRepositoryImpl {
	return &SeasonalPricingRepositoryImpl{db: db}
}

func (r *SeasonalPricingRepositoryImpl) Create(ctx context.Context, s *domain.SeasonalPricing) error {
	query := `
		INSERT INTO seasonal_pricing (name, season, equipment_type_id, start_date, end_date,
			hourly_multiplier, daily_multiplier, fixed_hourly_rate, fixed_daily_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		s.Name, s.Season, s.EquipmentTypeID, s.StartDate, s.EndDate,
		s.HourlyMultiplier, s.DailyMultiplier,
		nullDecimal(s.FixedHourlyRate), nullDecimal(s.FixedDailyRate), s.IsActive,
	).Scan(&s.ID, &s.CreatedOn, &s.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to create seasonal pricing: %w", err)
	}
	return nil
}

// FindForDate returns the seasonal window covering the date, boundaries
// inclusive. When windows overlap the newest row wins. Absence returns
// (nil, nil).
func (r *SeasonalPricingRepositoryImpl) FindForDate(ctx context.Context, typeID int32, date time.Time) (*domain.SeasonalPricing, error) {
	query := `
		SELECT id, name, season, equipment_type_id, start_date, end_date,
			hourly_multiplier, daily_multiplier, fixed_hourly_rate, fixed_daily_rate,
			is_active, created_on, updated_on
		FROM seasonal_pricing
		WHERE equipment_type_id = $1
		  AND is_active = TRUE
		  AND start_date <= $2
		  AND end_date >= $2
		ORDER BY created_on DESC
		LIMIT 1`

	var s domain.SeasonalPricing
	var fixedHourly, fixedDaily decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, query, typeID, date).Scan(
		&s.ID, &s.Name, &s.Season, &s.EquipmentTypeID, &s.StartDate, &s.EndDate,
		&s.HourlyMultiplier, &s.DailyMultiplier, &fixedHourly, &fixedDaily,
		&s.IsActive, &s.CreatedOn, &s.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find seasonal pricing for type %d: %w", typeID, err)
	}
	s.FixedHourlyRate = decimalPtr(fixedHourly)
	s.FixedDailyRate = decimalPtr(fixedDaily)
	return &s, nil
}

type DemandPricingRepositoryImpl struct {
	db *sql.DB
}

func NewDemandPricingRepository(db *sql.DB) *DemandPricingRepositoryImpl {
	return &DemandPricingRepositoryImpl{db: db}
}

func (r *DemandPricingRepositoryImpl) Create(ctx context.Context, d *domain.DemandPricing) error {
	query := `
		INSERT INTO demand_pricing (equipment_type_id, low_demand_threshold, high_demand_threshold,
			low_demand_multiplier, normal_demand_multiplier, high_demand_multiplier,
			demand_calculation_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		d.EquipmentTypeID, d.LowThreshold, d.HighThreshold,
		d.LowMultiplier, d.NormalMultiplier, d.HighMultiplier,
		d.WindowDays, d.IsActive,
	).Scan(&d.ID, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to create demand pricing: %w", err)
	}
	return nil
}

// GetActiveByType returns (nil, nil) when no demand config exists for
// the type; the caller treats that as a neutral multiplier.
func (r *DemandPricingRepositoryImpl) GetActiveByType(ctx context.Context, typeID int32) (*domain.DemandPricing, error) {
	query := `
		SELECT id, equipment_type_id, low_demand_threshold, high_demand_threshold,
			low_demand_multiplier, normal_demand_multiplier, high_demand_multiplier,
			demand_calculation_days, is_active, created_on, updated_on
		FROM demand_pricing
		WHERE equipment_type_id = $1 AND is_active = TRUE
		ORDER BY created_on DESC
		LIMIT 1`

	var d domain.DemandPricing
	err := r.db.QueryRowContext(ctx, query, typeID).Scan(
		&d.ID, &d.EquipmentTypeID, &d.LowThreshold, &d.HighThreshold,
		&d.LowMultiplier, &d.NormalMultiplier, &d.HighMultiplier,
		&d.WindowDays, &d.IsActive, &d.CreatedOn, &d.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demand pricing for type %d: %w", typeID, err)
	}
	return &d, nil
}

type PricingHistoryRepositoryImpl struct {
	db *sql.DB
}

func NewPricingHistoryRepository(db *sql.DB) *PricingHistoryRepositoryImpl {
	return &PricingHistoryRepositoryImpl{db: db}
}

// Upsert keeps one row per (equipment, effective date); a rerun for the
// same day overwrites the previous row.
func (r *PricingHistoryRepositoryImpl) Upsert(ctx context.Context, h *domain.PricingHistory) error {
	query := `
		INSERT INTO pricing_history (equipment_id, pricing_rule_id, base_rate, adjusted_rate,
			multiplier, rate_type, demand_level, effective_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (equipment_id, effective_date) DO UPDATE
		SET pricing_rule_id = EXCLUDED.pricing_rule_id,
			base_rate = EXCLUDED.base_rate,
			adjusted_rate = EXCLUDED.adjusted_rate,
			multiplier = EXCLUDED.multiplier,
			rate_type = EXCLUDED.rate_type,
			demand_level = EXCLUDED.demand_level
		RETURNING id, created_on`

	err := r.db.QueryRowContext(ctx, query,
		h.EquipmentID, h.PricingRuleID, h.BaseRate, h.AdjustedRate,
		h.Multiplier, h.RateType, h.DemandLevel, h.EffectiveDate,
	).Scan(&h.ID, &h.CreatedOn)
	if err != nil {
		return fmt.Errorf("failed to upsert pricing history: %w", err)
	}
	return nil
}

func (r *PricingHistoryRepositoryImpl) GetByEquipmentAndDate(ctx context.Context, equipmentID int32, date time.Time) (*domain.PricingHistory, error) {
	query := `
		SELECT id, equipment_id, pricing_rule_id, base_rate, adjusted_rate,
			multiplier, rate_type, demand_level, effective_date, created_on
		FROM pricing_history
		WHERE equipment_id = $1 AND effective_date = $2`

	var h domain.PricingHistory
	err := r.db.QueryRowContext(ctx, query, equipmentID, date).Scan(
		&h.ID, &h.EquipmentID, &h.PricingRuleID, &h.BaseRate, &h.AdjustedRate,
		&h.Multiplier, &h.RateType, &h.DemandLevel, &h.EffectiveDate, &h.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing history: %w", err)
	}
	return &h, nil
}

func (r *PricingHistoryRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pricing_history WHERE effective_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old pricing history: %w", err)
	}
	return res.RowsAffected()
}

func (r *PricingHistoryRepositoryImpl) DailyAverage(ctx context.Context, date time.Time) (decimal.Decimal, int32, error) {
	query := `
		SELECT COALESCE(AVG(multiplier), 1), COUNT(*)
		FROM pricing_history
		WHERE effective_date = $1`

	var avg decimal.Decimal
	var count int32
	if err := r.db.QueryRowContext(ctx, query, date).Scan(&avg, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to compute daily pricing average: %w", err)
	}
	return avg, count, nil
}

func daysArray(days []int) pq.Int64Array {
	if len(days) == 0 {
		return nil
	}
	out := make(pq.Int64Array, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
