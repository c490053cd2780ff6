package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"medroster/internal/config"
	"medroster/pkg/core/calendar"
	"medroster/pkg/core/catalog"
	"medroster/pkg/core/scheduler"
)

// BuildRunInput derives the catalogs a scheduling run consumes from one
// raw input bundle: the eligibility index, the facility index and the
// slot catalog.
func BuildRunInput(input catalog.Input, cfg *config.Config, logger *zap.Logger) (scheduler.RunInput, error) {
	month, err := MonthFromConfig(cfg)
	if err != nil {
		return scheduler.RunInput{}, err
	}
	logger.Debug("Resolved scheduling month",
		zap.Int("year", month.Year),
		zap.Int("month", int(month.Month)),
		zap.Int("days", month.DayCount()))

	// Step 1: Eligibility index
	eligibility, err := catalog.BuildEligibility(input.Availability, input.Providers, input.Credentials, month, logger)
	if err != nil {
		return scheduler.RunInput{}, fmt.Errorf("failed to build eligibility index: %w", err)
	}
	logger.Debug("Built eligibility index", zap.Int("providers", len(eligibility.Providers)))

	// Step 2: Facility index
	facilities, err := catalog.BuildFacilities(input.Facilities, input.Coverage, month, logger)
	if err != nil {
		return scheduler.RunInput{}, fmt.Errorf("failed to build facility index: %w", err)
	}
	logger.Debug("Built facility index", zap.Int("facilities", len(facilities.Facilities)))

	// Step 3: Slot catalog
	slots, err := catalog.BuildSlots(facilities, logger)
	if err != nil {
		return scheduler.RunInput{}, fmt.Errorf("failed to build slot catalog: %w", err)
	}
	logger.Debug("Built slot catalog", zap.Int("slots", len(slots)))

	return scheduler.RunInput{
		Month:      month,
		Providers:  eligibility.Providers,
		Facilities: facilities.Facilities,
		Slots:      slots,
		Config:     engineConfig(cfg),
	}, nil
}

// MonthFromConfig resolves the configured scheduling horizon. An
// unconfigured year and month mean the generic 31-day planning month.
func MonthFromConfig(cfg *config.Config) (calendar.Month, error) {
	if cfg.Year == 0 && cfg.Month == 0 {
		return calendar.GenericMonth(), nil
	}
	return calendar.NewMonth(cfg.Year, time.Month(cfg.Month))
}

// engineConfig translates application configuration into the engine's
// config. Config validation has already vetted the policy strings and
// exclusion groups.
func engineConfig(cfg *config.Config) scheduler.Config {
	engine := scheduler.DefaultConfig()
	if policy := scheduler.QuotaPolicy(cfg.FixedQuotaPolicy); policy.IsValid() {
		engine.FixedQuotaPolicy = policy
	}
	if policy := scheduler.QuotaPolicy(cfg.IndependentQuotaPolicy); policy.IsValid() {
		engine.IndependentQuotaPolicy = policy
	}
	if cfg.MD2GroupA != nil {
		engine.MD2GroupA = cfg.MD2GroupA
	}
	if cfg.MD2GroupB != nil {
		engine.MD2GroupB = cfg.MD2GroupB
	}
	return engine
}
