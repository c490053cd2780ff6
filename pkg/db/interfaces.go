package db

import "context"

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	InsertRun(ctx context.Context, run RosterRun) error
	GetRuns(ctx context.Context) ([]RosterRun, error)
	InsertVariations(ctx context.Context, records []VariationRecord) error
	GetVariations(ctx context.Context, runID string) ([]VariationRecord, error)
	InsertAssignments(ctx context.Context, records []AssignmentRecord) error
	GetAssignments(ctx context.Context, runID, variation string) ([]AssignmentRecord, error)
}
