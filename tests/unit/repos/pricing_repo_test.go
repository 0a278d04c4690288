package repos

import (
	"context"
	"testing"
	"time"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPricingHistoryRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPricingHistoryRepository(db)

	h := &domain.PricingHistory{
		EquipmentID:   1,
		BaseRate:      decimal.RequireFromString("5000"),
		AdjustedRate:  decimal.RequireFromString("6250"),
		Multiplier:    decimal.RequireFromString("1.25"),
		RateType:      domain.RateTypeDaily,
		DemandLevel:   domain.DemandNormal,
		EffectiveDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery("INSERT INTO pricing_history (.+) ON CONFLICT \\(equipment_id, effective_date\\) DO UPDATE").
		WithArgs(h.EquipmentID, nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			string(h.RateType), string(h.DemandLevel), h.EffectiveDate).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int32(11), time.Now()))

	err = repo.Upsert(ctx, h)
	assert.NoError(t, err)
	assert.Equal(t, int32(11), h.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingHistoryRepository_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPricingHistoryRepository(db)

	cutoff := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM pricing_history WHERE effective_date").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	deleted, err := repo.DeleteOlderThan(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
}

func TestPricingHistoryRepository_DailyAverage(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPricingHistoryRepository(db)

	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COALESCE\\(AVG\\(multiplier\\), 1\\), COUNT").
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow("1.0825", int32(12)))

	avg, count, err := repo.DailyAverage(ctx, date)
	assert.NoError(t, err)
	assert.Equal(t, int32(12), count)
	assert.True(t, avg.Equal(decimal.RequireFromString("1.0825")), "got %s", avg)
}

func TestSeasonalPricingRepository_FindForDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := postgres.NewSeasonalPricingRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM seasonal_pricing").
			WithArgs(int32(3), date).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "season", "equipment_type_id", "start_date", "end_date",
				"hourly_multiplier", "daily_multiplier", "fixed_hourly_rate", "fixed_daily_rate",
				"is_active", "created_on", "updated_on",
			}).AddRow(
				int32(2), "Planting season", string(domain.SeasonPlanting), int32(3),
				date.AddDate(0, -1, 0), date.AddDate(0, 1, 0),
				"1.1", "1.25", nil, nil, true, time.Now(), time.Now(),
			))

		s, err := repo.FindForDate(ctx, 3, date)
		assert.NoError(t, err)
		if assert.NotNil(t, s) {
			assert.True(t, s.DailyMultiplier.Equal(decimal.RequireFromString("1.25")))
			assert.Nil(t, s.FixedDailyRate)
		}
	})

	t.Run("AbsenceIsNotAnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := postgres.NewSeasonalPricingRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM seasonal_pricing").
			WithArgs(int32(3), date).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		s, err := repo.FindForDate(ctx, 3, date)
		assert.NoError(t, err)
		assert.Nil(t, s)
	})
}

func TestDemandPricingRepository_GetActiveByType(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingConfigReturnsNil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := postgres.NewDemandPricingRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM demand_pricing").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		d, err := repo.GetActiveByType(ctx, 3)
		assert.NoError(t, err)
		assert.Nil(t, d)
	})
}

func TestPricingRuleRepository_ListCandidates(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPricingRuleRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM pricing_rules").
		WithArgs(int32(1), int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "equipment_id", "equipment_type_id", "start_date", "end_date",
			"start_time", "end_time", "days_of_week",
			"latitude_min", "latitude_max", "longitude_min", "longitude_max",
			"hourly_multiplier", "daily_multiplier", "weekly_multiplier", "monthly_multiplier",
			"fixed_hourly_rate", "fixed_daily_rate", "fixed_weekly_rate", "fixed_monthly_rate",
			"priority", "is_active", "created_on", "updated_on",
		}).AddRow(
			int32(20), "harvest surge", nil, int32(3), nil, nil,
			nil, nil, "{5,6}",
			nil, nil, nil, nil,
			"1", "2", "1", "1",
			nil, "4500", nil, nil,
			int32(5), true, time.Now(), time.Now(),
		))

	rules, err := repo.ListCandidates(ctx, 1, 3)
	assert.NoError(t, err)
	if assert.Len(t, rules, 1) {
		r := rules[0]
		assert.Equal(t, "harvest surge", r.Name)
		assert.Nil(t, r.EquipmentID)
		assert.Equal(t, []int{5, 6}, r.DaysOfWeek)
		assert.True(t, r.DailyMultiplier.Equal(decimal.RequireFromString("2")))
		if assert.NotNil(t, r.FixedDailyRate) {
			assert.True(t, r.FixedDailyRate.Equal(decimal.RequireFromString("4500")))
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
