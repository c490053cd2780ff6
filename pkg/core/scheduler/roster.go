package scheduler

import "medroster/pkg/core/model"

// BuildRoster snapshots a state into the export shape for one variation:
// coverage grid, assignment list, uncovered slots with per-shift counts,
// score and invariant violations. Rank is stamped later by Rank.
func (e *Engine) BuildRoster(v Variation, st *State) Roster {
	uncovered := e.Uncovered(st)
	byShift := map[model.ShiftType]int{}
	for _, slot := range uncovered {
		byShift[slot.Shift]++
	}

	coverage := make(map[model.Slot][]string, len(st.covered))
	for slot, providers := range st.covered {
		coverage[slot] = append([]string(nil), providers...)
	}

	return Roster{
		Variation:        v,
		Coverage:         coverage,
		Assignments:      append([]model.Assignment(nil), st.assignments...),
		Uncovered:        uncovered,
		UncoveredByShift: byShift,
		Score:            e.Score(st),
		Violations:       e.Validate(st),
	}
}
