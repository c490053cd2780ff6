// Package glpk solves roster models with the GNU Linear Programming Kit
// through the lukpank/go-glpk binding.
package glpk

import (
	"context"
	"fmt"

	glp "github.com/lukpank/go-glpk/glpk"

	"medroster/pkg/solver"
)

// Solver is a GLPK-backed solver.Solver. GLPK runs single-threaded, so the
// Workers option is accepted and ignored.
type Solver struct{}

func New() *Solver {
	return &Solver{}
}

// Solve translates the model into a GLPK mixed-integer problem and runs it.
// The binding exposes no interrupt hook, so the time budget is enforced by
// racing the solve against the context: on expiry the caller gets
// StatusTimedOut while the abandoned solve runs to completion in the
// background.
func (s *Solver) Solve(ctx context.Context, m *solver.Model, opts solver.Options) (*solver.Result, error) {
	if m.VarCount() == 0 {
		return &solver.Result{Status: solver.StatusInfeasible}, nil
	}

	if opts.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeBudget)
		defer cancel()
	}

	type outcome struct {
		result *solver.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := run(m)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return &solver.Result{Status: solver.StatusTimedOut}, nil
	case out := <-done:
		return out.result, out.err
	}
}

func run(m *solver.Model) (*solver.Result, error) {
	lp := glp.New()
	defer lp.Delete()

	lp.SetProbName(m.Name)
	lp.SetObjDir(glp.ObjDir(glp.MAX))

	lp.AddCols(len(m.Vars))
	for i, name := range m.Vars {
		col := i + 1
		lp.SetColName(col, name)
		lp.SetColKind(col, glp.VarType(glp.BV))
	}

	lp.AddRows(len(m.Constraints))
	for i, c := range m.Constraints {
		row := i + 1
		lp.SetRowName(row, c.Name)
		switch c.Rel {
		case solver.LessEq:
			lp.SetRowBnds(row, glp.BndsType(glp.UP), 0, c.Up)
		case solver.GreaterEq:
			lp.SetRowBnds(row, glp.BndsType(glp.LO), c.Lo, 0)
		case solver.Equal:
			lp.SetRowBnds(row, glp.BndsType(glp.FX), c.Lo, c.Lo)
		case solver.Within:
			lp.SetRowBnds(row, glp.BndsType(glp.DB), c.Lo, c.Up)
		default:
			return nil, fmt.Errorf("unknown constraint relation %d in %q", c.Rel, c.Name)
		}

		// GLPK matrix rows are 1-based with index 0 unused.
		ind := make([]int32, len(c.Terms)+1)
		val := make([]float64, len(c.Terms)+1)
		for j, term := range c.Terms {
			ind[j+1] = int32(term.Var) + 1
			val[j+1] = term.Coeff
		}
		lp.SetMatRow(row, ind, val)
	}

	for _, term := range m.Objective {
		lp.SetObjCoef(int(term.Var)+1, term.Coeff)
	}

	smcp := glp.NewSmcp()
	smcp.SetMsgLev(glp.MsgLev(glp.MSG_ERR))
	if err := lp.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("simplex failed: %w", err)
	}

	iocp := glp.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(glp.MsgLev(glp.MSG_ERR))
	if err := lp.Intopt(iocp); err != nil {
		// The presolver reports an infeasible relaxation through the
		// return code rather than the MIP status.
		if err == glp.ENOPFS || err == glp.ENODFS {
			return &solver.Result{Status: solver.StatusInfeasible}, nil
		}
		return nil, fmt.Errorf("integer optimizer failed: %w", err)
	}

	var status solver.Status
	switch lp.MipStatus() {
	case glp.OPT:
		status = solver.StatusOptimal
	case glp.FEAS:
		status = solver.StatusFeasible
	default:
		status = solver.StatusInfeasible
	}
	if !status.Usable() {
		return &solver.Result{Status: status}, nil
	}

	values := make([]bool, len(m.Vars))
	for i := range values {
		values[i] = lp.MipColVal(i+1) > 0.5
	}
	return &solver.Result{Status: status, Values: values}, nil
}
