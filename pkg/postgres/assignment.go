package postgres

import (
	"context"
	"fmt"

	"medroster/pkg/db"
)

// InsertAssignments inserts assignment records into the database
func (d *DB) InsertAssignments(ctx context.Context, records []db.AssignmentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO roster_assignment (id, run_id, variation, provider, facility, shift, day)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, rec.ID, rec.RunID, rec.Variation, rec.Provider, rec.Facility, rec.Shift, rec.Day)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAssignments retrieves one variation's assignments for a run in
// roster display order
func (d *DB) GetAssignments(ctx context.Context, runID, variation string) ([]db.AssignmentRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, variation, provider, facility, shift, day
		FROM roster_assignment
		WHERE run_id = $1 AND variation = $2
		ORDER BY day, facility, shift, provider
	`, runID, variation)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var records []db.AssignmentRecord
	for rows.Next() {
		var rec db.AssignmentRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Variation, &rec.Provider,
			&rec.Facility, &rec.Shift, &rec.Day); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return records, nil
}
