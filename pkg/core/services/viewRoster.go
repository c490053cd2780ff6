package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medroster/pkg/db"
)

// ViewRosterStore defines the database operations needed for displaying
// one saved roster variation
type ViewRosterStore interface {
	GetAssignments(ctx context.Context, runID, variation string) ([]db.AssignmentRecord, error)
}

// ViewRoster fetches the assignments of one saved variation in display
// order (day, facility, shift, provider)
func ViewRoster(
	ctx context.Context,
	database ViewRosterStore,
	logger *zap.Logger,
	runID string,
	variation string,
) ([]db.AssignmentRecord, error) {
	logger.Debug("Starting viewRoster",
		zap.String("run_id", runID),
		zap.String("variation", variation))

	assignments, err := database.GetAssignments(ctx, runID, variation)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	if len(assignments) == 0 {
		return nil, fmt.Errorf("no assignments found for run %s variation %s", runID, variation)
	}

	logger.Debug("ViewRoster completed", zap.Int("assignments", len(assignments)))

	return assignments, nil
}
