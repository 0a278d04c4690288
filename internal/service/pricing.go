package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"agrohire-backend/internal/apperror"
	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/logger"
	"agrohire-backend/internal/repository"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type pricingService struct {
	equipmentRepo repository.EquipmentRepository
	bookingRepo   repository.BookingRepository
	ruleRepo      repository.PricingRuleRepository
	seasonalRepo  repository.SeasonalPricingRepository
	demandRepo    repository.DemandPricingRepository
	historyRepo   repository.PricingHistoryRepository
	retentionDays int
}

func NewPricingService(
	equipmentRepo repository.EquipmentRepository,
	bookingRepo repository.BookingRepository,
	ruleRepo repository.PricingRuleRepository,
	seasonalRepo repository.SeasonalPricingRepository,
	demandRepo repository.DemandPricingRepository,
	historyRepo repository.PricingHistoryRepository,
	retentionDays int,
) PricingService {
	return &pricingService{
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
		ruleRepo:      ruleRepo,
		seasonalRepo:  seasonalRepo,
		demandRepo:    demandRepo,
		historyRepo:   historyRepo,
		retentionDays: retentionDays,
	}
}

// EffectivePrice resolves the rate for one equipment item on a date.
//
// The base rate comes from the equipment. A fixed-rate override, when
// present, replaces the base exactly once; seasonal overrides take
// precedence over rule overrides, and the component whose fixed rate was
// consumed contributes no multiplier. The final price is
// base_or_fixed * seasonal * demand * rule, rounded to two decimals.
func (s *pricingService) EffectivePrice(ctx context.Context, equipmentID int32, rt domain.RateType, date time.Time, at *time.Time, loc *domain.Location) (*PriceResolution, error) {
	if !domain.ValidRateType(rt) {
		return nil, ErrInvalidRateType
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	base, err := eq.BaseRate(rt)
	if err != nil {
		return nil, ErrInvalidRateType
	}

	res := &PriceResolution{
		Equipment:   eq,
		RateType:    rt,
		BaseRate:    base,
		DemandLevel: domain.DemandNormal,
	}

	seasonal, err := s.seasonalFor(ctx, eq, date)
	if err != nil {
		return nil, err
	}
	demandMult, level, err := s.demandFor(ctx, eq, date)
	if err != nil {
		return nil, err
	}
	res.DemandLevel = level

	rule, err := s.matchRule(ctx, eq, date, at, loc)
	if err != nil {
		return nil, err
	}
	res.RuleApplied = rule
	res.SeasonApplied = seasonal

	price := base
	seasonalMult := one
	ruleMult := one

	if seasonal != nil {
		seasonalMult = seasonal.MultiplierFor(rt)
	}
	if rule != nil {
		ruleMult = rule.MultiplierFor(rt)
	}

	// One fixed rate at most replaces the base; seasonal wins over rule.
	switch {
	case seasonal != nil && seasonal.FixedRateFor(rt) != nil:
		price = *seasonal.FixedRateFor(rt)
		seasonalMult = one
	case rule != nil && rule.FixedRateFor(rt) != nil:
		price = *rule.FixedRateFor(rt)
		ruleMult = one
	}

	res.FinalRate = price.Mul(seasonalMult).Mul(demandMult).Mul(ruleMult).Round(2)
	if base.IsPositive() {
		res.Multiplier = res.FinalRate.DivRound(base, 4)
	} else {
		res.Multiplier = one
	}

	s.recordHistory(ctx, res, date)

	return res, nil
}

// seasonalFor returns the seasonal config in force, or nil. Equipment
// without a type never has seasonal pricing.
func (s *pricingService) seasonalFor(ctx context.Context, eq *domain.Equipment, date time.Time) (*domain.SeasonalPricing, error) {
	if eq.EquipmentTypeID == 0 {
		return nil, nil
	}
	sp, err := s.seasonalRepo.FindForDate(ctx, eq.EquipmentTypeID, date)
	if err != nil || sp == nil {
		return nil, err
	}
	if !sp.InEffect(date) {
		return nil, nil
	}
	return sp, nil
}

// demandFor classifies demand from the trailing booking count for the
// equipment's type. Missing config yields a neutral multiplier.
func (s *pricingService) demandFor(ctx context.Context, eq *domain.Equipment, date time.Time) (decimal.Decimal, domain.DemandLevel, error) {
	if eq.EquipmentTypeID == 0 {
		return one, domain.DemandNormal, nil
	}

	cfg, err := s.demandRepo.GetActiveByType(ctx, eq.EquipmentTypeID)
	if err != nil {
		return decimal.Zero, domain.DemandNormal, err
	}
	if cfg == nil {
		return one, domain.DemandNormal, nil
	}

	windowStart := date.AddDate(0, 0, -int(cfg.WindowDays))
	count, err := s.bookingRepo.CountByTypeInWindow(ctx, eq.EquipmentTypeID, windowStart, date)
	if err != nil {
		return decimal.Zero, domain.DemandNormal, err
	}

	level := cfg.LevelFor(count)
	return cfg.MultiplierFor(level), level, nil
}

// matchRule returns the winning pricing rule: candidates are already
// ordered by priority then recency, so the first applicable one wins.
func (s *pricingService) matchRule(ctx context.Context, eq *domain.Equipment, date time.Time, at *time.Time, loc *domain.Location) (*domain.PricingRule, error) {
	rules, err := s.ruleRepo.ListCandidates(ctx, eq.ID, eq.EquipmentTypeID)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].IsApplicable(eq, date, at, loc) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

// recordHistory upserts the daily ledger row. Failures are logged and
// never block the resolved price.
func (s *pricingService) recordHistory(ctx context.Context, res *PriceResolution, date time.Time) {
	h := &domain.PricingHistory{
		EquipmentID:   res.Equipment.ID,
		BaseRate:      res.BaseRate,
		AdjustedRate:  res.FinalRate,
		Multiplier:    res.Multiplier,
		RateType:      res.RateType,
		DemandLevel:   res.DemandLevel,
		EffectiveDate: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}
	if res.RuleApplied != nil {
		h.PricingRuleID = &res.RuleApplied.ID
	}
	if err := s.historyRepo.Upsert(ctx, h); err != nil {
		logger.WarnContext(ctx, "pricing history upsert failed",
			"equipment_id", res.Equipment.ID, "date", h.EffectiveDate, "error", err)
	}
}

func (s *pricingService) Quote(ctx context.Context, equipmentID int32, date time.Time) (*PriceQuote, error) {
	res, err := s.EffectivePrice(ctx, equipmentID, domain.RateTypeDaily, date, nil, nil)
	if err != nil {
		return nil, err
	}

	q := &PriceQuote{
		EquipmentName:   res.Equipment.Name,
		OriginalPrice:   res.BaseRate,
		NewPrice:        res.FinalRate,
		Multiplier:      res.Multiplier,
		PriceHasChanged: !res.FinalRate.Equal(res.BaseRate),
	}
	if res.RuleApplied != nil {
		q.RuleApplied = &res.RuleApplied.Name
	}
	return q, nil
}

func (s *pricingService) UpdateDynamicPricing(ctx context.Context, now time.Time) (int32, error) {
	items, err := s.equipmentRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	var updated int32
	for i := range items {
		if _, err := s.EffectivePrice(ctx, items[i].ID, domain.RateTypeDaily, now, nil, nil); err != nil {
			logger.WarnContext(ctx, "dynamic pricing update failed for equipment",
				"equipment_id", items[i].ID, "error", err)
			continue
		}
		updated++
	}

	logger.InfoContext(ctx, "dynamic pricing update finished",
		"equipment_total", len(items), "updated", updated)
	return updated, nil
}

func (s *pricingService) CleanupHistory(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -s.retentionDays)
	deleted, err := s.historyRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logger.InfoContext(ctx, "pricing history cleanup finished",
		"cutoff", cutoff.Format("2006-01-02"), "deleted", deleted)
	return deleted, nil
}

func (s *pricingService) GenerateReport(ctx context.Context, date time.Time) (*PricingReport, error) {
	avg, count, err := s.historyRepo.DailyAverage(ctx, time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	report := &PricingReport{
		Date:              date,
		EquipmentCount:    count,
		AverageMultiplier: avg.Round(4),
	}
	logger.InfoContext(ctx, "pricing report generated",
		"date", date.Format("2006-01-02"), "equipment_count", count, "average_multiplier", report.AverageMultiplier)
	return report, nil
}

func (s *pricingService) CreateRule(ctx context.Context, rule *domain.PricingRule) error {
	rule.ApplyDefaults()
	if err := rule.Validate(); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	return s.ruleRepo.Create(ctx, rule)
}

func (s *pricingService) CreateSeasonalPricing(ctx context.Context, sp *domain.SeasonalPricing) error {
	sp.ApplyDefaults()
	if err := sp.Validate(); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	return s.seasonalRepo.Create(ctx, sp)
}

func (s *pricingService) CreateDemandPricing(ctx context.Context, d *domain.DemandPricing) error {
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	return s.demandRepo.Create(ctx, d)
}
