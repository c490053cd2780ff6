package postgres

import (
	"context"
	"fmt"

	"medroster/pkg/db"
)

// InsertRun inserts a roster run record
func (d *DB) InsertRun(ctx context.Context, run db.RosterRun) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO roster_run (id, year, month, solver_status, used_fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.Year, run.Month, run.SolverStatus, run.UsedFallback, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert roster run: %w", err)
	}
	return nil
}

// GetRuns retrieves all roster run records, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.RosterRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, year, month, solver_status, used_fallback, created_at
		FROM roster_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster runs: %w", err)
	}
	defer rows.Close()

	var runs []db.RosterRun
	for rows.Next() {
		var r db.RosterRun
		if err := rows.Scan(&r.ID, &r.Year, &r.Month, &r.SolverStatus, &r.UsedFallback, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster runs: %w", err)
	}

	return runs, nil
}
