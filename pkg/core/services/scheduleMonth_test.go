package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medroster/internal/config"
	"medroster/pkg/core/calendar"
	"medroster/pkg/core/model"
	"medroster/pkg/core/scheduler"
	"medroster/pkg/db"
	"medroster/pkg/solver"
)

// mockScheduleStore implements ScheduleMonthStore for testing
type mockScheduleStore struct {
	insertedRuns        []db.RosterRun
	insertedVariations  []db.VariationRecord
	insertedAssignments []db.AssignmentRecord

	insertRunErr         error
	insertVariationsErr  error
	insertAssignmentsErr error
}

func (m *mockScheduleStore) InsertRun(ctx context.Context, run db.RosterRun) error {
	if m.insertRunErr != nil {
		return m.insertRunErr
	}
	m.insertedRuns = append(m.insertedRuns, run)
	return nil
}

func (m *mockScheduleStore) InsertVariations(ctx context.Context, variations []db.VariationRecord) error {
	if m.insertVariationsErr != nil {
		return m.insertVariationsErr
	}
	m.insertedVariations = append(m.insertedVariations, variations...)
	return nil
}

func (m *mockScheduleStore) InsertAssignments(ctx context.Context, assignments []db.AssignmentRecord) error {
	if m.insertAssignmentsErr != nil {
		return m.insertAssignmentsErr
	}
	m.insertedAssignments = append(m.insertedAssignments, assignments...)
	return nil
}

// mockSolver implements solver.Solver for testing. A usable result with a
// nil value vector is sized to the model with every variable set, which
// commits every candidate assignment.
type mockSolver struct {
	result *solver.Result
	err    error

	calls   int
	gotOpts solver.Options
}

func (m *mockSolver) Solve(ctx context.Context, mipModel *solver.Model, opts solver.Options) (*solver.Result, error) {
	m.calls++
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil && m.result.Status.Usable() && m.result.Values == nil {
		m.result.Values = make([]bool, mipModel.VarCount())
		for i := range m.result.Values {
			m.result.Values[i] = true
		}
	}
	return m.result, nil
}

func fullAvailability(days int) model.Availability {
	avail := model.Availability{}
	for day := 1; day <= days; day++ {
		avail[day] = model.AllShifts()
	}
	return avail
}

// testRunInput is a one-provider, one-facility run with MD1 coverage on
// the given days. Trivially solvable by both phases.
func testRunInput(days ...int) scheduler.RunInput {
	slots := make([]model.Slot, len(days))
	for i, day := range days {
		slots[i] = model.Slot{Facility: "AMC", Shift: model.ShiftMD1, Day: day}
	}

	return scheduler.RunInput{
		Month: calendar.GenericMonth(),
		Providers: []model.Provider{{
			Key:          "Avery",
			Class:        model.ClassIndependent,
			TotalQuota:   model.QuotaUnlimited,
			WeekendQuota: model.QuotaUnlimited,
			PMQuota:      model.QuotaUnlimited,
			Preferred:    model.ShiftSet{},
			Credentials:  map[string]bool{"AMC": true},
			Availability: fullAvailability(31),
		}},
		Facilities: []model.Facility{{
			Key:     "AMC",
			Volumes: map[model.ShiftType]float64{model.ShiftMD1: 9},
		}},
		Slots:  slots,
		Config: scheduler.DefaultConfig(),
	}
}

func TestScheduleMonth_ExactSolveSavesRankedVariations(t *testing.T) {
	store := &mockScheduleStore{}
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusOptimal}}
	cfg := config.Default()
	logger := zap.NewNop()

	result, err := ScheduleMonth(context.Background(), store, mip, testRunInput(1, 2), cfg, logger, false)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, string(solver.StatusOptimal), result.SolverStatus)
	assert.False(t, result.UsedFallback)
	assert.Equal(t, 1, mip.calls)
	assert.Equal(t, time.Duration(config.DefaultSolverTimeBudgetSeconds)*time.Second, mip.gotOpts.TimeBudget)
	assert.Equal(t, config.DefaultSolverWorkers, mip.gotOpts.Workers)

	require.Len(t, result.Rosters, 3)
	for i, roster := range result.Rosters {
		assert.Equal(t, i+1, roster.Rank)
		assert.Equal(t, 1.0, roster.Score.CoverageRate, "variation %s should be fully covered", roster.Variation)
		assert.Empty(t, roster.Violations, "variation %s should be violation free", roster.Variation)
	}

	// Equal scores keep the completion order
	assert.Equal(t, scheduler.VariationMinimize, result.Rosters[0].Variation)
	assert.Equal(t, scheduler.VariationBalanced, result.Rosters[1].Variation)
	assert.Equal(t, scheduler.VariationConservative, result.Rosters[2].Variation)

	// Run record
	assert.NotEmpty(t, result.RunID)
	require.Len(t, store.insertedRuns, 1)
	run := store.insertedRuns[0]
	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, string(solver.StatusOptimal), run.SolverStatus)
	assert.False(t, run.UsedFallback)
	assert.Zero(t, run.Year, "generic month runs carry no calendar year")
	assert.False(t, run.CreatedAt.IsZero())

	// Variation records follow rank order
	require.Len(t, store.insertedVariations, 3)
	for i, record := range store.insertedVariations {
		assert.Equal(t, result.RunID, record.RunID)
		assert.Equal(t, i+1, record.Rank)
		assert.Equal(t, 1.0, record.CoverageRate)
		assert.Zero(t, record.Uncovered)
	}

	// Every variation persists its full assignment list
	assert.Len(t, store.insertedAssignments, 6, "3 variations x 2 assignments each")
	for _, record := range store.insertedAssignments {
		assert.Equal(t, result.RunID, record.RunID)
		assert.Equal(t, "Avery", record.Provider)
		assert.Equal(t, "AMC", record.Facility)
		assert.Equal(t, "MD1", record.Shift)
	}
}

func TestScheduleMonth_SolverErrorFallsBackToGreedy(t *testing.T) {
	store := &mockScheduleStore{}
	mip := &mockSolver{err: errors.New("glpk: solve failed")}
	cfg := config.Default()
	logger := zap.NewNop()

	result, err := ScheduleMonth(context.Background(), store, mip, testRunInput(1, 2), cfg, logger, false)
	require.NoError(t, err)

	assert.True(t, result.UsedFallback)
	assert.Equal(t, solverStatusError, result.SolverStatus)
	assert.Equal(t, 1, mip.calls)

	// The greedy fallback covers this input on its own
	require.Len(t, result.Rosters, 3)
	for _, roster := range result.Rosters {
		assert.Empty(t, roster.Uncovered, "variation %s should still reach full coverage", roster.Variation)
	}

	require.Len(t, store.insertedRuns, 1)
	assert.True(t, store.insertedRuns[0].UsedFallback)
	assert.Equal(t, solverStatusError, store.insertedRuns[0].SolverStatus)
}

func TestScheduleMonth_InfeasibleStatusFallsBackToGreedy(t *testing.T) {
	store := &mockScheduleStore{}
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusInfeasible}}
	cfg := config.Default()
	logger := zap.NewNop()

	result, err := ScheduleMonth(context.Background(), store, mip, testRunInput(1), cfg, logger, false)
	require.NoError(t, err)

	assert.True(t, result.UsedFallback)
	assert.Equal(t, string(solver.StatusInfeasible), result.SolverStatus)
	require.Len(t, result.Rosters, 3)
	assert.Empty(t, result.Rosters[0].Uncovered)
}

func TestScheduleMonth_DryRunDoesNotPersist(t *testing.T) {
	store := &mockScheduleStore{}
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusOptimal}}
	cfg := config.Default()
	logger := zap.NewNop()

	result, err := ScheduleMonth(context.Background(), store, mip, testRunInput(1, 2), cfg, logger, true)
	require.NoError(t, err)

	assert.Empty(t, result.RunID)
	assert.Empty(t, store.insertedRuns)
	assert.Empty(t, store.insertedVariations)
	assert.Empty(t, store.insertedAssignments)

	// Results are still produced in full
	require.Len(t, result.Rosters, 3)
	assert.Equal(t, 1.0, result.Rosters[0].Score.CoverageRate)
}

func TestScheduleMonth_NoDatabaseConfigured(t *testing.T) {
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusOptimal}}
	cfg := config.Default()
	logger := zap.NewNop()

	result, err := ScheduleMonth(context.Background(), nil, mip, testRunInput(1), cfg, logger, false)
	require.NoError(t, err)

	assert.Empty(t, result.RunID)
	require.Len(t, result.Rosters, 3)
}

func TestScheduleMonth_EmptyInputsFail(t *testing.T) {
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusOptimal}}
	cfg := config.Default()
	logger := zap.NewNop()

	noProviders := testRunInput(1)
	noProviders.Providers = nil
	_, err := ScheduleMonth(context.Background(), nil, mip, noProviders, cfg, logger, true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no providers")

	noSlots := testRunInput()
	_, err = ScheduleMonth(context.Background(), nil, mip, noSlots, cfg, logger, true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no coverage slots")
}

func TestScheduleMonth_InsertErrorSurfaces(t *testing.T) {
	store := &mockScheduleStore{insertRunErr: errors.New("pool closed")}
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusOptimal}}
	cfg := config.Default()
	logger := zap.NewNop()

	_, err := ScheduleMonth(context.Background(), store, mip, testRunInput(1), cfg, logger, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save run")
}

func TestScheduleMonth_SkipsExactPhaseWithoutCandidates(t *testing.T) {
	// No credentials anywhere means an empty exact model
	input := testRunInput(1, 2)
	input.Providers[0].Credentials = map[string]bool{}

	store := &mockScheduleStore{}
	mip := &mockSolver{result: &solver.Result{Status: solver.StatusOptimal}}
	cfg := config.Default()
	logger := zap.NewNop()

	result, err := ScheduleMonth(context.Background(), store, mip, input, cfg, logger, false)
	require.NoError(t, err)

	assert.Equal(t, 0, mip.calls, "solver should not run on an empty model")
	assert.True(t, result.UsedFallback)
	assert.Equal(t, solverStatusSkipped, result.SolverStatus)

	// Nothing is assignable, so every slot stays open
	require.Len(t, result.Rosters, 3)
	for _, roster := range result.Rosters {
		assert.Len(t, roster.Uncovered, 2)
		assert.Empty(t, roster.Assignments)
	}
}
