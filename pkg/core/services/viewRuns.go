package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medroster/pkg/db"
)

// ViewRunsResult contains recent scheduling runs with their ranked
// variation summaries
type ViewRunsResult struct {
	Runs       []db.RosterRun                  // newest first, at most the requested count
	Variations map[string][]db.VariationRecord // keyed by run ID, rank order
}

// ViewRunsStore defines the database operations needed for listing runs
type ViewRunsStore interface {
	GetRuns(ctx context.Context) ([]db.RosterRun, error)
	GetVariations(ctx context.Context, runID string) ([]db.VariationRecord, error)
}

// ViewRuns fetches the most recent scheduling runs and their variation summaries
func ViewRuns(
	ctx context.Context,
	database ViewRunsStore,
	logger *zap.Logger,
	count int,
) (*ViewRunsResult, error) {
	logger.Debug("Starting viewRuns", zap.Int("count", count))

	// Step 1: Fetch runs, newest first
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	if len(runs) == 0 {
		return nil, fmt.Errorf("no scheduling runs found - run schedule first")
	}

	if count > 0 && count < len(runs) {
		runs = runs[:count]
	}
	logger.Debug("Selected runs", zap.Int("count", len(runs)))

	// Step 2: Fetch the variation summaries per run
	variations := make(map[string][]db.VariationRecord, len(runs))
	for _, run := range runs {
		records, err := database.GetVariations(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch variations for run %s: %w", run.ID, err)
		}
		variations[run.ID] = records
	}

	logger.Debug("ViewRuns completed", zap.Int("runs", len(runs)))

	return &ViewRunsResult{
		Runs:       runs,
		Variations: variations,
	}, nil
}
