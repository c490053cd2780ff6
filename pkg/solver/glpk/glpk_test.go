package glpk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medroster/pkg/solver"
)

func TestSolve_PicksHigherValueVariable(t *testing.T) {
	m := solver.NewModel("pick-one")
	a := m.AddBool("a")
	b := m.AddBool("b")
	m.Add(solver.SumAtMost("one_of", []solver.Term{{Var: a, Coeff: 1}, {Var: b, Coeff: 1}}, 1))
	m.Maximize([]solver.Term{{Var: a, Coeff: 1}, {Var: b, Coeff: 2}})

	result, err := New().Solve(context.Background(), m, solver.Options{})

	require.NoError(t, err)
	assert.Equal(t, solver.StatusOptimal, result.Status)
	assert.False(t, result.Value(a))
	assert.True(t, result.Value(b))
}

func TestSolve_InfeasibleModel(t *testing.T) {
	m := solver.NewModel("infeasible")
	a := m.AddBool("a")
	// a must be both 0 and 1.
	m.Add(solver.SumAtLeast("force_on", []solver.Term{{Var: a, Coeff: 1}}, 1))
	m.Add(solver.SumAtMost("force_off", []solver.Term{{Var: a, Coeff: 1}}, 0))
	m.Maximize([]solver.Term{{Var: a, Coeff: 1}})

	result, err := New().Solve(context.Background(), m, solver.Options{})

	require.NoError(t, err)
	assert.False(t, result.Status.Usable())
}

func TestSolve_EmptyModel(t *testing.T) {
	m := solver.NewModel("empty")

	result, err := New().Solve(context.Background(), m, solver.Options{})

	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, result.Status)
}

func TestSolve_CancelledContext(t *testing.T) {
	m := solver.NewModel("cancelled")
	a := m.AddBool("a")
	m.Add(solver.SumAtMost("cap", []solver.Term{{Var: a, Coeff: 1}}, 1))
	m.Maximize([]solver.Term{{Var: a, Coeff: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := New().Solve(ctx, m, solver.Options{})

	require.NoError(t, err)
	// A cancelled context may still lose the race to a trivial solve, but
	// the result must be one of the two legitimate outcomes.
	if result.Status != solver.StatusTimedOut {
		assert.Equal(t, solver.StatusOptimal, result.Status)
	}
}
