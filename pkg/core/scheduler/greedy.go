package scheduler

import "medroster/pkg/core/model"

// scoreFunc ranks a candidate provider for a slot against the current
// state. Higher is better; ties go to the earlier provider in key order.
type scoreFunc func(st *State, p model.Provider, slot model.Slot) float64

// Fallback builds a roster greedily when the exact phase produced nothing
// usable. Slots are taken in catalog order and each goes to the best
// eligible provider, with a strong preference for one already working the
// same shift that day since joining costs no additional working shift.
// Quota ceilings are enforced here, unlike in completion.
func (e *Engine) Fallback() *State {
	st := newState()
	for _, slot := range e.slots {
		e.assignBest(st, slot, true, scoreFallback)
	}
	return st
}

// Uncovered lists the slots the given state leaves unfilled, in catalog
// order.
func (e *Engine) Uncovered(st *State) []model.Slot {
	var out []model.Slot
	for _, slot := range e.slots {
		if !st.Covered(slot) {
			out = append(out, slot)
		}
	}
	return out
}

func (e *Engine) assignBest(st *State, slot model.Slot, enforceQuotas bool, score scoreFunc) bool {
	best := -1
	var bestScore float64
	for i, p := range e.providers {
		if !e.eligible(st, p, slot, enforceQuotas) {
			continue
		}
		s := score(st, p, slot)
		if best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	if best == -1 {
		return false
	}

	p := e.providers[best]
	st.commit(model.Assignment{Provider: p.Key, Facility: slot.Facility, Shift: slot.Shift, Day: slot.Day},
		e.volume(slot.Facility, slot.Shift), e.month.IsWeekend(slot.Day))
	return true
}

// eligible decides whether a provider may take a slot given the state so
// far. Credentialing, availability, the volume band maximum and the MD2
// site exclusion always apply. Joining an existing working shift passes
// every count-based check because it moves no counter; a new working
// shift must also clear the monthly ceiling, the daily hour cap, the
// sliding windows and, when enforced, the contract quotas.
func (e *Engine) eligible(st *State, p model.Provider, slot model.Slot, enforceQuotas bool) bool {
	if !p.CredentialedAt(slot.Facility) {
		return false
	}
	if !p.Availability.Allows(slot.Day, slot.Shift) {
		return false
	}

	ws := model.WorkingShift{Provider: p.Key, Shift: slot.Shift, Day: slot.Day}
	spec := slot.Shift.Spec()
	if st.volume[ws]+e.volume(slot.Facility, slot.Shift) > spec.MaxVolume {
		return false
	}
	if slot.Shift == model.ShiftMD2 && !e.siteGroupsCompatible(st, p.Key, slot) {
		return false
	}

	if st.working[ws] {
		return true
	}

	if st.shiftCount[p.Key] >= model.MonthlyShiftCeiling {
		return false
	}
	if st.dailyHours(p.Key, slot.Day)+spec.Hours > model.DailyHourCap {
		return false
	}
	if !st.windowFits(p.Key, []model.ShiftType{slot.Shift}, e.month.DayCount(), slot.Day, spec.Window) {
		return false
	}
	if slot.Shift != model.ShiftMD2 {
		if !st.windowFits(p.Key, []model.ShiftType{model.ShiftMD1, model.ShiftPM}, e.month.DayCount(), slot.Day, model.CombinedMD1PMWindow()) {
			return false
		}
	}

	if enforceQuotas {
		if p.TotalQuota.Bounded() && st.shiftCount[p.Key] >= int(p.TotalQuota) {
			return false
		}
		if e.month.IsWeekend(slot.Day) && p.WeekendQuota.Bounded() && st.weekendCount[p.Key] >= int(p.WeekendQuota) {
			return false
		}
		if slot.Shift == model.ShiftPM && p.PMQuota.Bounded() && st.pmCount[p.Key] >= int(p.PMQuota) {
			return false
		}
	}
	return true
}

// siteGroupsCompatible rejects an MD2 candidate whose facility sits in one
// restricted group while the provider already covers a same-day MD2
// facility in the other. Facilities outside both groups mix freely.
func (e *Engine) siteGroupsCompatible(st *State, provider string, slot model.Slot) bool {
	inA := e.groupA[slot.Facility]
	inB := e.groupB[slot.Facility]
	if !inA && !inB {
		return true
	}
	for facility := range st.md2Sites[providerDay{provider: provider, day: slot.Day}] {
		if (inA && e.groupB[facility]) || (inB && e.groupA[facility]) {
			return false
		}
	}
	return true
}

func scoreFallback(st *State, p model.Provider, slot model.Slot) float64 {
	if st.working[model.WorkingShift{Provider: p.Key, Shift: slot.Shift, Day: slot.Day}] {
		return 1000
	}
	return 0
}
