package jobs

import (
	"context"
	"time"

	"agrohire-backend/internal/logger"
)

// UpdateDynamicPricing recomputes the effective daily rate for every
// active equipment item and records it in the pricing history. Runs
// hourly; the history upsert keeps it idempotent within a day.
func (jr *JobRunner) UpdateDynamicPricing() {
	jr.runWithRecovery("UpdateDynamicPricing", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		updated, err := jr.services.Pricing.UpdateDynamicPricing(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Dynamic pricing update failed", "error", err)
			return
		}
		logger.Info("Dynamic pricing updated", "equipment_updated", updated)
	})
}

// CleanupPricingHistory removes history rows past the retention window.
func (jr *JobRunner) CleanupPricingHistory() {
	jr.runWithRecovery("CleanupPricingHistory", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		deleted, err := jr.services.Pricing.CleanupHistory(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Pricing history cleanup failed", "error", err)
			return
		}
		logger.Info("Pricing history cleaned up", "rows_deleted", deleted)
	})
}

// GeneratePricingReport logs the day's aggregate price adjustments.
func (jr *JobRunner) GeneratePricingReport() {
	jr.runWithRecovery("GeneratePricingReport", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := jr.services.Pricing.GenerateReport(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Pricing report generation failed", "error", err)
			return
		}
		logger.Info("Pricing report",
			"date", report.Date.Format("2006-01-02"),
			"equipment_count", report.EquipmentCount,
			"average_multiplier", report.AverageMultiplier)
	})
}
