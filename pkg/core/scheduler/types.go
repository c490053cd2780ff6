package scheduler

import (
	"medroster/pkg/core/calendar"
	"medroster/pkg/core/model"
)

// Variation identifies one completion strategy applied on top of the
// phase-1 base solution.
type Variation string

const (
	VariationMinimize     Variation = "minimize"
	VariationBalanced     Variation = "balanced"
	VariationConservative Variation = "conservative"
)

// Variations returns every variation in evaluation order. Score ties keep
// this order, so it is part of the ranking contract.
func Variations() []Variation {
	return []Variation{VariationMinimize, VariationBalanced, VariationConservative}
}

// QuotaPolicy says how a contract class's total quota binds in the exact
// phase: as a ceiling, or as an exact target. The historical formulations
// disagree, so the choice is configuration, not code.
type QuotaPolicy string

const (
	QuotaCeiling QuotaPolicy = "ceiling"
	QuotaExact   QuotaPolicy = "exact"
)

func (p QuotaPolicy) IsValid() bool {
	return p == QuotaCeiling || p == QuotaExact
}

// ScoreWeights weight the three quota-excess categories in the
// satisfaction score.
type ScoreWeights struct {
	Total   float64
	PM      float64
	Weekend float64
}

// Config carries the engine's tuning switches.
type Config struct {
	FixedQuotaPolicy       QuotaPolicy
	IndependentQuotaPolicy QuotaPolicy

	// MD2 site-grouping exclusion: a provider may work MD2 within group A
	// or group B on a given day, never both.
	MD2GroupA []string
	MD2GroupB []string

	Weights ScoreWeights
}

func DefaultConfig() Config {
	return Config{
		FixedQuotaPolicy:       QuotaCeiling,
		IndependentQuotaPolicy: QuotaCeiling,
		MD2GroupA:              []string{"NHMC", "NMHMC"},
		MD2GroupB:              []string{"NMMC", "NBAMC"},
		Weights:                ScoreWeights{Total: 1.0, PM: 1.5, Weekend: 2.0},
	}
}

// RunInput is everything one scheduling run consumes. The engine sorts
// providers and slots itself, so callers need not pre-order them.
type RunInput struct {
	Month      calendar.Month
	Providers  []model.Provider
	Facilities []model.Facility
	Slots      []model.Slot
	Config     Config
}

// Score is the satisfaction record for one variation. Value is in [0,1],
// lower is better.
type Score struct {
	Value               float64
	TotalWeightedExcess float64
	TotalExcess         int
	PMExcess            int
	WeekendExcess       int
	ProvidersAffected   int
	CoveredSlots        int
	UncoveredSlots      int
	CoverageRate        float64
}

// Roster is one variation's completed schedule with its score and any
// invariant violations the validator found.
type Roster struct {
	Variation        Variation
	Rank             int
	Coverage         map[model.Slot][]string
	Assignments      []model.Assignment
	Uncovered        []model.Slot
	UncoveredByShift map[model.ShiftType]int
	Score            Score
	Violations       []Violation
}

// Violation reports a roster state that breaks a scheduling invariant.
type Violation struct {
	Provider    string
	Shift       model.ShiftType
	Day         int
	Description string
}
