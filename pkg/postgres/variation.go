package postgres

import (
	"context"
	"fmt"

	"medroster/pkg/db"
)

// InsertVariations inserts variation records for a run
func (d *DB) InsertVariations(ctx context.Context, records []db.VariationRecord) error {
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
			INSERT INTO roster_variation (id, run_id, name, rank, score, coverage_rate, uncovered, violations)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, rec.ID, rec.RunID, rec.Name, rec.Rank, rec.Score, rec.CoverageRate, rec.Uncovered, rec.Violations)
		if err != nil {
			return fmt.Errorf("failed to insert variation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetVariations retrieves the variation records of a run ordered by rank
func (d *DB) GetVariations(ctx context.Context, runID string) ([]db.VariationRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, name, rank, score, coverage_rate, uncovered, violations
		FROM roster_variation
		WHERE run_id = $1
		ORDER BY rank
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query variations: %w", err)
	}
	defer rows.Close()

	var records []db.VariationRecord
	for rows.Next() {
		var rec db.VariationRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Name, &rec.Rank, &rec.Score,
			&rec.CoverageRate, &rec.Uncovered, &rec.Violations); err != nil {
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variations: %w", err)
	}

	return records, nil
}
