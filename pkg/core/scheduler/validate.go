package scheduler

import (
	"fmt"

	"medroster/pkg/core/model"
)

// Validate checks a state against the scheduling invariants and reports
// every breach. Quota overruns are not violations; completion is allowed
// to exceed quotas and the scorer prices that instead.
func (e *Engine) Validate(st *State) []Violation {
	var out []Violation
	out = append(out, e.validateAssignments(st)...)
	out = append(out, e.validateAggregates(st)...)
	out = append(out, e.validateWorkingShifts(st)...)
	out = append(out, e.validateWindows(st)...)
	return out
}

// validateAssignments checks every assignment individually: it must name a
// catalog slot and a known provider who is credentialed and available.
func (e *Engine) validateAssignments(st *State) []Violation {
	catalog := make(map[model.Slot]bool, len(e.slots))
	for _, slot := range e.slots {
		catalog[slot] = true
	}
	providers := make(map[string]model.Provider, len(e.providers))
	for _, p := range e.providers {
		providers[p.Key] = p
	}

	var out []Violation
	for _, a := range st.assignments {
		if !catalog[a.Slot()] {
			out = append(out, Violation{Provider: a.Provider, Shift: a.Shift, Day: a.Day,
				Description: fmt.Sprintf("assignment targets %s %s day %d which is not in the slot catalog", a.Facility, a.Shift, a.Day)})
			continue
		}
		p, ok := providers[a.Provider]
		if !ok {
			out = append(out, Violation{Provider: a.Provider, Shift: a.Shift, Day: a.Day,
				Description: "assignment names an unknown provider"})
			continue
		}
		if !p.CredentialedAt(a.Facility) {
			out = append(out, Violation{Provider: a.Provider, Shift: a.Shift, Day: a.Day,
				Description: fmt.Sprintf("provider is not credentialed at %s", a.Facility)})
		}
		if !p.Availability.Allows(a.Day, a.Shift) {
			out = append(out, Violation{Provider: a.Provider, Shift: a.Shift, Day: a.Day,
				Description: fmt.Sprintf("provider is unavailable for %s on day %d", a.Shift, a.Day)})
		}
	}
	return out
}

// validateAggregates replays the assignment list into fresh bookkeeping
// and compares; a mismatch means the incremental state drifted.
func (e *Engine) validateAggregates(st *State) []Violation {
	rebuilt := newState()
	for _, a := range st.assignments {
		rebuilt.commit(a, e.volume(a.Facility, a.Shift), e.month.IsWeekend(a.Day))
	}

	var out []Violation
	if len(rebuilt.covered) != len(st.covered) {
		out = append(out, Violation{Description: fmt.Sprintf(
			"coverage index lists %d slots but assignments cover %d", len(st.covered), len(rebuilt.covered))})
	}
	for _, p := range e.providers {
		if st.shiftCount[p.Key] != rebuilt.shiftCount[p.Key] ||
			st.weekendCount[p.Key] != rebuilt.weekendCount[p.Key] ||
			st.pmCount[p.Key] != rebuilt.pmCount[p.Key] {
			out = append(out, Violation{Provider: p.Key,
				Description: "working shift counters disagree with the assignment list"})
		}
	}
	return out
}

// validateWorkingShifts checks the per-day invariants: the daily hour cap,
// the volume band on both ends, the monthly ceiling and the MD2 site
// exclusion.
func (e *Engine) validateWorkingShifts(st *State) []Violation {
	var out []Violation
	for _, p := range e.providers {
		for _, day := range e.month.Days() {
			if hours := st.dailyHours(p.Key, day); hours > model.DailyHourCap {
				out = append(out, Violation{Provider: p.Key, Day: day,
					Description: fmt.Sprintf("%d shift hours on day %d exceed the %d hour cap", hours, day, model.DailyHourCap)})
			}

			for _, shift := range model.ShiftTypes() {
				ws := model.WorkingShift{Provider: p.Key, Shift: shift, Day: day}
				if !st.working[ws] {
					continue
				}
				spec := shift.Spec()
				if vol := st.volume[ws]; vol < spec.MinVolume || vol > spec.MaxVolume {
					out = append(out, Violation{Provider: p.Key, Shift: shift, Day: day,
						Description: fmt.Sprintf("working shift volume %.1f is outside the %s band [%.0f, %.0f]",
							vol, shift, spec.MinVolume, spec.MaxVolume)})
				}
			}

			sites := st.md2Sites[providerDay{provider: p.Key, day: day}]
			var inA, inB bool
			for facility := range sites {
				inA = inA || e.groupA[facility]
				inB = inB || e.groupB[facility]
			}
			if inA && inB {
				out = append(out, Violation{Provider: p.Key, Shift: model.ShiftMD2, Day: day,
					Description: fmt.Sprintf("MD2 coverage on day %d mixes mutually exclusive facility groups", day)})
			}
		}

		if n := st.shiftCount[p.Key]; n > model.MonthlyShiftCeiling {
			out = append(out, Violation{Provider: p.Key,
				Description: fmt.Sprintf("%d working shifts exceed the monthly ceiling of %d", n, model.MonthlyShiftCeiling)})
		}
	}
	return out
}

// validateWindows counts working shifts inside every sliding window, per
// shift type and for the combined MD1+PM series.
func (e *Engine) validateWindows(st *State) []Violation {
	dayCount := e.month.DayCount()
	var out []Violation
	for _, p := range e.providers {
		for _, shift := range model.ShiftTypes() {
			rule := shift.Spec().Window
			for _, start := range windowStarts(dayCount, rule.Span) {
				if n := e.windowCount(st, p.Key, []model.ShiftType{shift}, start, rule.Span); n > rule.Max {
					out = append(out, Violation{Provider: p.Key, Shift: shift, Day: start,
						Description: fmt.Sprintf("%d %s working shifts in the %d days from day %d (max %d)",
							n, shift, rule.Span, start, rule.Max)})
				}
			}
		}

		combined := model.CombinedMD1PMWindow()
		for _, start := range windowStarts(dayCount, combined.Span) {
			if n := e.windowCount(st, p.Key, []model.ShiftType{model.ShiftMD1, model.ShiftPM}, start, combined.Span); n > combined.Max {
				out = append(out, Violation{Provider: p.Key, Day: start,
					Description: fmt.Sprintf("%d MD1+PM working shifts in the %d days from day %d (max %d)",
						n, combined.Span, start, combined.Max)})
			}
		}
	}
	return out
}

func (e *Engine) windowCount(st *State, provider string, series []model.ShiftType, start, span int) int {
	end := start + span - 1
	if end > e.month.DayCount() {
		end = e.month.DayCount()
	}
	n := 0
	for day := start; day <= end; day++ {
		for _, shift := range series {
			if st.working[model.WorkingShift{Provider: provider, Shift: shift, Day: day}] {
				n++
			}
		}
	}
	return n
}
