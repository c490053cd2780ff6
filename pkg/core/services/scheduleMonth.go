package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medroster/internal/config"
	"medroster/pkg/core/scheduler"
	"medroster/pkg/db"
	"medroster/pkg/solver"
)

// Solver statuses recorded when the exact phase never produced a usable
// variable assignment.
const (
	solverStatusSkipped = "skipped"
	solverStatusError   = "error"
)

// ScheduleMonthResult contains the scheduling results
type ScheduleMonthResult struct {
	RunID        string // empty when the run was not persisted
	Year         int    // zero for the generic planning month
	Month        int
	SolverStatus string
	UsedFallback bool
	Rosters      []scheduler.Roster // ranked, best first
}

// ScheduleMonthStore defines the database operations needed for persisting a scheduling run
type ScheduleMonthStore interface {
	InsertRun(ctx context.Context, run db.RosterRun) error
	InsertVariations(ctx context.Context, variations []db.VariationRecord) error
	InsertAssignments(ctx context.Context, assignments []db.AssignmentRecord) error
}

// ScheduleMonth runs one scheduling pass: the exact phase against the MIP
// solver, the greedy fallback when the solver yields nothing usable, the
// three completion variations, and scoring and ranking of the results.
// If dryRun is true, the run is not saved to the database
func ScheduleMonth(
	ctx context.Context,
	database ScheduleMonthStore,
	mip solver.Solver,
	input scheduler.RunInput,
	cfg *config.Config,
	logger *zap.Logger,
	dryRun bool,
) (*ScheduleMonthResult, error) {
	logger.Debug("Starting scheduleMonth",
		zap.Int("providers", len(input.Providers)),
		zap.Int("facilities", len(input.Facilities)),
		zap.Int("slots", len(input.Slots)),
		zap.Bool("dry_run", dryRun))

	if len(input.Providers) == 0 {
		return nil, fmt.Errorf("no providers to schedule")
	}
	if len(input.Slots) == 0 {
		return nil, fmt.Errorf("no coverage slots to fill")
	}

	engine := scheduler.New(input)

	// Step 1: Build the exact-phase model
	logger.Debug("Building exact model")
	exact := engine.BuildModel()
	logger.Debug("Exact model built",
		zap.Int("variables", exact.Model.VarCount()),
		zap.Int("constraints", exact.Model.ConstraintCount()))

	// Step 2: Solve, falling back to the greedy pass when the solver
	// yields nothing usable
	var base *scheduler.State
	var solverStatus string
	usedFallback := false

	switch {
	case exact.Model.VarCount() == 0:
		logger.Warn("No eligible provider-slot pairs, skipping exact phase")
		solverStatus = solverStatusSkipped
		usedFallback = true
	default:
		opts := solver.Options{
			TimeBudget: time.Duration(cfg.SolverTimeBudgetSeconds) * time.Second,
			Workers:    cfg.SolverWorkers,
		}
		logger.Info("Running exact solve",
			zap.Duration("time_budget", opts.TimeBudget),
			zap.Int("workers", opts.Workers))

		result, err := mip.Solve(ctx, exact.Model, opts)
		switch {
		case err != nil:
			logger.Warn("Exact solve failed, falling back to greedy assignment", zap.Error(err))
			solverStatus = solverStatusError
			usedFallback = true
		case !result.Status.Usable():
			logger.Warn("Exact solve returned no usable solution, falling back to greedy assignment",
				zap.String("status", string(result.Status)))
			solverStatus = string(result.Status)
			usedFallback = true
		default:
			solverStatus = string(result.Status)
			base = engine.DecodeSolution(exact, result)
			logger.Info("Exact solve completed",
				zap.String("status", solverStatus),
				zap.Int("assignments", base.AssignmentCount()))
		}
	}

	if usedFallback {
		base = engine.Fallback()
		logger.Info("Greedy fallback completed",
			zap.Int("assignments", base.AssignmentCount()))
	}

	// Step 3: Find coverage gaps
	uncovered := engine.Uncovered(base)
	if len(uncovered) > 0 {
		logger.Info("Coverage gaps remain after base assignment",
			zap.Int("uncovered", len(uncovered)))
	} else {
		logger.Info("Full coverage achieved by base assignment")
	}

	// Step 4: Complete the three variations concurrently
	logger.Debug("Completing variations")
	variations := scheduler.Variations()
	rosters := make([]scheduler.Roster, len(variations))

	var wg sync.WaitGroup
	for i, variation := range variations {
		wg.Add(1)
		go func(i int, variation scheduler.Variation) {
			defer wg.Done()
			completed := engine.Complete(variation, base, uncovered)
			rosters[i] = engine.BuildRoster(variation, completed)
		}(i, variation)
	}
	wg.Wait()

	// Step 5: Rank by satisfaction score
	scheduler.Rank(rosters)

	for _, roster := range rosters {
		logger.Info("Variation scored",
			zap.String("variation", string(roster.Variation)),
			zap.Int("rank", roster.Rank),
			zap.Float64("score", roster.Score.Value),
			zap.Float64("coverage_rate", roster.Score.CoverageRate),
			zap.Int("uncovered", len(roster.Uncovered)),
			zap.Int("violations", len(roster.Violations)))

		for _, violation := range roster.Violations {
			logger.Warn("Constraint violation",
				zap.String("variation", string(roster.Variation)),
				zap.String("provider", violation.Provider),
				zap.String("shift", string(violation.Shift)),
				zap.Int("day", violation.Day),
				zap.String("description", violation.Description))
		}
	}

	result := &ScheduleMonthResult{
		Year:         input.Month.Year,
		Month:        int(input.Month.Month),
		SolverStatus: solverStatus,
		UsedFallback: usedFallback,
		Rosters:      rosters,
	}

	// Step 6: Persist unless this is a dry run
	if dryRun {
		logger.Info("Dry run mode - results not saved")
		return result, nil
	}
	if database == nil {
		logger.Info("No database configured - results not saved")
		return result, nil
	}

	runID, err := persistRun(ctx, database, result)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	logger.Info("Run saved", zap.String("run_id", runID))

	return result, nil
}

// persistRun writes the run header, the variation summaries and every
// assignment of every variation.
func persistRun(ctx context.Context, database ScheduleMonthStore, result *ScheduleMonthResult) (string, error) {
	runID := uuid.New().String()

	run := db.RosterRun{
		ID:           runID,
		Year:         result.Year,
		Month:        result.Month,
		SolverStatus: result.SolverStatus,
		UsedFallback: result.UsedFallback,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.InsertRun(ctx, run); err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	variationRecords := make([]db.VariationRecord, 0, len(result.Rosters))
	assignmentRecords := make([]db.AssignmentRecord, 0)
	for _, roster := range result.Rosters {
		variationRecords = append(variationRecords, db.VariationRecord{
			ID:           uuid.New().String(),
			RunID:        runID,
			Name:         string(roster.Variation),
			Rank:         roster.Rank,
			Score:        roster.Score.Value,
			CoverageRate: roster.Score.CoverageRate,
			Uncovered:    len(roster.Uncovered),
			Violations:   len(roster.Violations),
		})

		for _, assignment := range roster.Assignments {
			assignmentRecords = append(assignmentRecords, db.AssignmentRecord{
				ID:        uuid.New().String(),
				RunID:     runID,
				Variation: string(roster.Variation),
				Provider:  assignment.Provider,
				Facility:  assignment.Facility,
				Shift:     string(assignment.Shift),
				Day:       assignment.Day,
			})
		}
	}

	if err := database.InsertVariations(ctx, variationRecords); err != nil {
		return "", fmt.Errorf("failed to save variations: %w", err)
	}
	if err := database.InsertAssignments(ctx, assignmentRecords); err != nil {
		return "", fmt.Errorf("failed to save assignments: %w", err)
	}

	return runID, nil
}
