package db

import "time"

// RosterRun represents one scheduling run over a month
type RosterRun struct {
	ID           string
	Year         int
	Month        int
	SolverStatus string
	UsedFallback bool
	CreatedAt    time.Time
}

// VariationRecord represents one ranked roster variation of a run
type VariationRecord struct {
	ID           string
	RunID        string
	Name         string
	Rank         int
	Score        float64
	CoverageRate float64
	Uncovered    int
	Violations   int
}

// AssignmentRecord represents one provider-facility-shift-day binding
// within a variation
type AssignmentRecord struct {
	ID        string
	RunID     string
	Variation string
	Provider  string
	Facility  string
	Shift     string
	Day       int
}
