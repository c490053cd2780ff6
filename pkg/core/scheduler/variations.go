package scheduler

import "medroster/pkg/core/model"

// Complete derives one variation from a base state by attempting its
// uncovered slots in catalog order. The base is never mutated. The
// conservative variation keeps the base as is; the other two fill with
// quota ceilings relaxed, trading provider satisfaction for coverage.
func (e *Engine) Complete(v Variation, base *State, uncovered []model.Slot) *State {
	st := base.clone()
	if v == VariationConservative {
		return st
	}

	score := scoreMinimize
	if v == VariationBalanced {
		score = scoreBalanced
	}
	for _, slot := range uncovered {
		e.assignBest(st, slot, false, score)
	}
	return st
}

// scoreMinimize concentrates completion work on providers already in use,
// preferring a same-shift join, then preferred shift types, then fixed
// contracts.
func scoreMinimize(st *State, p model.Provider, slot model.Slot) float64 {
	var score float64
	if st.shiftCount[p.Key] > 0 {
		score += 10000
		if st.working[model.WorkingShift{Provider: p.Key, Shift: slot.Shift, Day: slot.Day}] {
			score += 5000
		}
	}
	if p.Preferred.Has(slot.Shift) {
		score += 100
	}
	if p.Class == model.ClassFixed {
		score += 50
	}
	return score
}

// scoreBalanced spreads completion work toward lightly used providers
// while still rewarding a same-shift join.
func scoreBalanced(st *State, p model.Provider, slot model.Slot) float64 {
	score := 10000 - float64(st.shiftCount[p.Key])*100
	if st.working[model.WorkingShift{Provider: p.Key, Shift: slot.Shift, Day: slot.Day}] {
		score += 200
	}
	return score
}
