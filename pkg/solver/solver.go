// Package solver defines the boundary to the external optimizer: a linear
// boolean model, a Solve contract, and the result statuses callers branch
// on. Backends live in subpackages.
package solver

import (
	"context"
	"time"
)

// Var identifies one boolean decision variable within a Model.
type Var int

// Term is a coefficient applied to a variable in a linear expression.
type Term struct {
	Var   Var
	Coeff float64
}

// Relation says how a constraint bounds its weighted sum.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Equal
	Within
)

// Constraint bounds a weighted sum of variables. Lo and Up are read
// according to Rel: LessEq uses Up, GreaterEq uses Lo, Equal uses Lo,
// Within uses both.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Relation
	Lo    float64
	Up    float64
}

func SumAtMost(name string, terms []Term, up float64) Constraint {
	return Constraint{Name: name, Terms: terms, Rel: LessEq, Up: up}
}

func SumAtLeast(name string, terms []Term, lo float64) Constraint {
	return Constraint{Name: name, Terms: terms, Rel: GreaterEq, Lo: lo}
}

func SumEquals(name string, terms []Term, target float64) Constraint {
	return Constraint{Name: name, Terms: terms, Rel: Equal, Lo: target, Up: target}
}

func SumWithin(name string, terms []Term, lo, up float64) Constraint {
	return Constraint{Name: name, Terms: terms, Rel: Within, Lo: lo, Up: up}
}

// Model is a maximization problem over boolean variables with linear
// constraints. Build one with NewModel, then hand it to a Solver.
type Model struct {
	Name        string
	Vars        []string // variable names; a Var indexes this slice
	Constraints []Constraint
	Objective   []Term
}

func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddBool declares a boolean variable and returns its handle.
func (m *Model) AddBool(name string) Var {
	m.Vars = append(m.Vars, name)
	return Var(len(m.Vars) - 1)
}

// Add appends a constraint. Constraints without terms are dropped since
// they bound nothing.
func (m *Model) Add(c Constraint) {
	if len(c.Terms) == 0 {
		return
	}
	m.Constraints = append(m.Constraints, c)
}

// Maximize sets the objective to maximize the given weighted sum.
func (m *Model) Maximize(terms []Term) {
	m.Objective = terms
}

func (m *Model) VarCount() int {
	return len(m.Vars)
}

func (m *Model) ConstraintCount() int {
	return len(m.Constraints)
}

type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
	StatusTimedOut   Status = "timed_out"
)

// Usable reports whether a result of this status carries a variable
// assignment worth reading.
func (s Status) Usable() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Result is a solve outcome. Values is indexed by Var and only meaningful
// when Status is usable.
type Result struct {
	Status Status
	Values []bool
}

func (r *Result) Value(v Var) bool {
	if r == nil || int(v) < 0 || int(v) >= len(r.Values) {
		return false
	}
	return r.Values[v]
}

// Options are opaque tuning knobs, not part of the model's semantics.
type Options struct {
	// TimeBudget bounds wall-clock solve time. Zero means unlimited.
	TimeBudget time.Duration
	// Workers hints at backend parallelism. Backends may ignore it.
	Workers int
}

// Solver runs a model to completion or to its time budget.
type Solver interface {
	Solve(ctx context.Context, model *Model, opts Options) (*Result, error)
}
