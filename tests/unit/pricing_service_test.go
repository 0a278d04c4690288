package unit

import (
	"context"
	"testing"
	"time"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository"
	"agrohire-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type pricingFixture struct {
	equipmentRepo *MockEquipmentRepo
	bookingRepo   *MockBookingRepo
	ruleRepo      *MockPricingRuleRepo
	seasonalRepo  *MockSeasonalPricingRepo
	demandRepo    *MockDemandPricingRepo
	historyRepo   *MockPricingHistoryRepo
	svc           service.PricingService
}

func newPricingFixture() *pricingFixture {
	f := &pricingFixture{
		equipmentRepo: new(MockEquipmentRepo),
		bookingRepo:   new(MockBookingRepo),
		ruleRepo:      new(MockPricingRuleRepo),
		seasonalRepo:  new(MockSeasonalPricingRepo),
		demandRepo:    new(MockDemandPricingRepo),
		historyRepo:   new(MockPricingHistoryRepo),
	}
	f.svc = service.NewPricingService(
		f.equipmentRepo, f.bookingRepo, f.ruleRepo,
		f.seasonalRepo, f.demandRepo, f.historyRepo, 90,
	)
	return f
}

func tractor() *domain.Equipment {
	return &domain.Equipment{
		ID:              1,
		Name:            "John Deere 6120M",
		EquipmentTypeID: 3,
		OwnerID:         7,
		DailyRate:       dec("5000"),
		HourlyRate:      dec("800"),
		IsActive:        true,
	}
}

// noAdjustments stubs a world with no seasonal, demand or rule configs.
func (f *pricingFixture) noAdjustments() {
	f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
	f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
	f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{}, nil)
	f.historyRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PricingHistory")).Return(nil)
}

func TestPricingService_EffectivePrice(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("NoAdjustmentsReturnsBase", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.noAdjustments()

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.True(t, res.FinalRate.Equal(dec("5000")), "got %s", res.FinalRate)
		assert.True(t, res.Multiplier.Equal(dec("1")), "got %s", res.Multiplier)
		assert.Equal(t, domain.DemandNormal, res.DemandLevel)
		assert.Nil(t, res.RuleApplied)
		f.historyRepo.AssertNumberOfCalls(t, "Upsert", 1)
	})

	t.Run("SeasonalMultiplierApplies", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(&domain.SeasonalPricing{
			Name:             "Planting season",
			HourlyMultiplier: dec("1.1"),
			DailyMultiplier:  dec("1.25"),
			StartDate:        day.AddDate(0, -1, 0),
			EndDate:          day.AddDate(0, 1, 0),
			IsActive:         true,
		}, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.True(t, res.FinalRate.Equal(dec("6250")), "got %s", res.FinalRate)
	})

	t.Run("DemandCountAtHighThresholdIsHigh", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(&domain.DemandPricing{
			LowThreshold:     2,
			HighThreshold:    10,
			LowMultiplier:    dec("0.9"),
			NormalMultiplier: dec("1"),
			HighMultiplier:   dec("1.3"),
			WindowDays:       7,
			IsActive:         true,
		}, nil)
		f.bookingRepo.On("CountByTypeInWindow", mock.Anything, int32(3), day.AddDate(0, 0, -7), day).Return(int32(10), nil)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.DemandHigh, res.DemandLevel)
		assert.True(t, res.FinalRate.Equal(dec("6500")), "got %s", res.FinalRate)
	})

	t.Run("HighestPriorityRuleWins", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
		// Candidates arrive ordered by priority descending.
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{
			{
				ID: 20, Name: "harvest surge", Priority: 5, IsActive: true,
				HourlyMultiplier: dec("1"), DailyMultiplier: dec("2"),
				WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
			},
			{
				ID: 21, Name: "weekend uplift", Priority: 1, IsActive: true,
				HourlyMultiplier: dec("1"), DailyMultiplier: dec("1.5"),
				WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
			},
		}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.NotNil(t, res.RuleApplied)
		assert.Equal(t, int32(20), res.RuleApplied.ID)
		assert.True(t, res.FinalRate.Equal(dec("10000")), "got %s", res.FinalRate)
	})

	t.Run("InapplicableHighPriorityRuleIsSkipped", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)

		otherEquipment := int32(99)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{
			{
				ID: 30, Priority: 9, IsActive: true, EquipmentID: &otherEquipment,
				HourlyMultiplier: dec("1"), DailyMultiplier: dec("3"),
				WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
			},
			{
				ID: 31, Priority: 2, IsActive: true,
				HourlyMultiplier: dec("1"), DailyMultiplier: dec("1.5"),
				WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
			},
		}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, int32(31), res.RuleApplied.ID)
		assert.True(t, res.FinalRate.Equal(dec("7500")), "got %s", res.FinalRate)
	})

	t.Run("SeasonalFixedRateBeatsRuleFixedRate", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(&domain.SeasonalPricing{
			Name:             "off season",
			HourlyMultiplier: dec("1"),
			DailyMultiplier:  dec("0.8"),
			FixedDailyRate:   decPtr("4000"),
			StartDate:        day.AddDate(0, -1, 0),
			EndDate:          day.AddDate(0, 1, 0),
			IsActive:         true,
		}, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{
			{
				ID: 40, Priority: 1, IsActive: true,
				HourlyMultiplier: dec("1"), DailyMultiplier: dec("1.5"),
				WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
				FixedDailyRate: decPtr("3500"),
			},
		}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		// Seasonal fixed 4000 replaces the base and consumes the seasonal
		// multiplier; the rule still contributes its multiplier.
		assert.True(t, res.FinalRate.Equal(dec("6000")), "got %s", res.FinalRate)
	})

	t.Run("SeasonalWindowNotCoveringDateIsIgnored", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(&domain.SeasonalPricing{
			Name:             "last spring",
			HourlyMultiplier: dec("1"),
			DailyMultiplier:  dec("1.5"),
			StartDate:        day.AddDate(-1, -2, 0),
			EndDate:          day.AddDate(-1, 0, 0),
			IsActive:         true,
		}, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.Nil(t, res.SeasonApplied)
		assert.True(t, res.FinalRate.Equal(dec("5000")), "got %s", res.FinalRate)
	})

	t.Run("HistoryFailureDoesNotBlockPrice", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError)

		res, err := f.svc.EffectivePrice(ctx, 1, domain.RateTypeDaily, day, nil, nil)
		assert.NoError(t, err)
		assert.True(t, res.FinalRate.Equal(dec("5000")))
	})

	t.Run("UnknownEquipment", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(404)).Return(nil, repository.ErrNotFound)

		_, err := f.svc.EffectivePrice(ctx, 404, domain.RateTypeDaily, day, nil, nil)
		assert.ErrorIs(t, err, service.ErrEquipmentNotFound)
	})

	t.Run("InvalidRateType", func(t *testing.T) {
		f := newPricingFixture()
		_, err := f.svc.EffectivePrice(ctx, 1, domain.RateType("fortnightly"), day, nil, nil)
		assert.ErrorIs(t, err, service.ErrInvalidRateType)
	})
}

func TestPricingService_Quote(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("UnchangedPrice", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.noAdjustments()

		q, err := f.svc.Quote(ctx, 1, day)
		assert.NoError(t, err)
		assert.Equal(t, "John Deere 6120M", q.EquipmentName)
		assert.False(t, q.PriceHasChanged)
		assert.Nil(t, q.RuleApplied)
	})

	t.Run("ChangedPriceNamesTheRule", func(t *testing.T) {
		f := newPricingFixture()
		f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
		f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
		f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
		f.ruleRepo.On("ListCandidates", mock.Anything, int32(1), int32(3)).Return([]domain.PricingRule{
			{
				ID: 50, Name: "harvest surge", Priority: 3, IsActive: true,
				HourlyMultiplier: dec("1"), DailyMultiplier: dec("1.2"),
				WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
			},
		}, nil)
		f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		q, err := f.svc.Quote(ctx, 1, day)
		assert.NoError(t, err)
		assert.True(t, q.NewPrice.Equal(dec("6000")), "got %s", q.NewPrice)
		assert.True(t, q.PriceHasChanged)
		if assert.NotNil(t, q.RuleApplied) {
			assert.Equal(t, "harvest surge", *q.RuleApplied)
		}
	})
}

func TestPricingService_UpdateDynamicPricing(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	f := newPricingFixture()
	second := tractor()
	second.ID = 2
	f.equipmentRepo.On("ListActive", mock.Anything).Return([]domain.Equipment{*tractor(), *second}, nil)
	f.equipmentRepo.On("GetByID", mock.Anything, int32(1)).Return(tractor(), nil)
	f.equipmentRepo.On("GetByID", mock.Anything, int32(2)).Return(second, nil)
	f.seasonalRepo.On("FindForDate", mock.Anything, int32(3), mock.Anything).Return(nil, nil)
	f.demandRepo.On("GetActiveByType", mock.Anything, int32(3)).Return(nil, nil)
	f.ruleRepo.On("ListCandidates", mock.Anything, mock.Anything, int32(3)).Return([]domain.PricingRule{}, nil)
	f.historyRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateDynamicPricing(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), updated)
	f.historyRepo.AssertNumberOfCalls(t, "Upsert", 2)
}

func TestPricingService_CleanupHistory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 2, 0, 0, 0, time.UTC)

	f := newPricingFixture()
	f.historyRepo.On("DeleteOlderThan", mock.Anything, now.AddDate(0, 0, -90)).Return(int64(42), nil)

	deleted, err := f.svc.CleanupHistory(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
}

func TestPricingService_CreateRule(t *testing.T) {
	ctx := context.Background()

	t.Run("MultiplierAboveTenIsRejected", func(t *testing.T) {
		f := newPricingFixture()
		rule := &domain.PricingRule{
			Name:             "too aggressive",
			HourlyMultiplier: dec("1"), DailyMultiplier: dec("11"),
			WeeklyMultiplier: dec("1"), MonthlyMultiplier: dec("1"),
		}
		err := f.svc.CreateRule(ctx, rule)
		assert.Error(t, err)
		f.ruleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("OmittedMultipliersDefaultToNeutral", func(t *testing.T) {
		f := newPricingFixture()
		f.ruleRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PricingRule")).Return(nil)

		rule := &domain.PricingRule{
			Name:           "harvest fixed",
			FixedDailyRate: decPtr("3500"),
			Priority:       5,
			IsActive:       true,
		}
		err := f.svc.CreateRule(ctx, rule)
		assert.NoError(t, err)
		assert.True(t, rule.HourlyMultiplier.Equal(dec("1")))
		assert.True(t, rule.DailyMultiplier.Equal(dec("1")))
		assert.True(t, rule.WeeklyMultiplier.Equal(dec("1")))
		assert.True(t, rule.MonthlyMultiplier.Equal(dec("1")))
		f.ruleRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("ExplicitMultiplierIsKept", func(t *testing.T) {
		f := newPricingFixture()
		f.ruleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		rule := &domain.PricingRule{
			Name:            "weekend uplift",
			DailyMultiplier: dec("1.5"),
		}
		err := f.svc.CreateRule(ctx, rule)
		assert.NoError(t, err)
		assert.True(t, rule.DailyMultiplier.Equal(dec("1.5")))
		assert.True(t, rule.HourlyMultiplier.Equal(dec("1")))
	})
}

func TestPricingService_CreateSeasonalPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("OmittedMultipliersDefaultToNeutral", func(t *testing.T) {
		f := newPricingFixture()
		f.seasonalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SeasonalPricing")).Return(nil)

		sp := &domain.SeasonalPricing{
			Name:            "off season",
			EquipmentTypeID: 3,
			StartDate:       time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
			FixedDailyRate:  decPtr("4000"),
			IsActive:        true,
		}
		err := f.svc.CreateSeasonalPricing(ctx, sp)
		assert.NoError(t, err)
		assert.True(t, sp.HourlyMultiplier.Equal(dec("1")))
		assert.True(t, sp.DailyMultiplier.Equal(dec("1")))
	})

	t.Run("BackwardsDateRangeIsRejected", func(t *testing.T) {
		f := newPricingFixture()
		sp := &domain.SeasonalPricing{
			Name:            "inverted",
			EquipmentTypeID: 3,
			StartDate:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		}
		err := f.svc.CreateSeasonalPricing(ctx, sp)
		assert.Error(t, err)
		f.seasonalRepo.AssertNotCalled(t, "Create")
	})
}

func TestPricingService_CreateDemandPricing(t *testing.T) {
	ctx := context.Background()

	f := newPricingFixture()
	f.demandRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DemandPricing")).Return(nil)

	d := &domain.DemandPricing{
		EquipmentTypeID: 3,
		LowThreshold:    2,
		HighThreshold:   10,
		IsActive:        true,
	}
	err := f.svc.CreateDemandPricing(ctx, d)
	assert.NoError(t, err)
	assert.True(t, d.LowMultiplier.Equal(dec("1")))
	assert.True(t, d.NormalMultiplier.Equal(dec("1")))
	assert.True(t, d.HighMultiplier.Equal(dec("1")))
	assert.Equal(t, int32(7), d.WindowDays)
}
