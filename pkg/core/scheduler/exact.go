package scheduler

import (
	"fmt"
	"strings"

	"medroster/pkg/core/model"
	"medroster/pkg/solver"
)

// ExactModel pairs the solver model with the assignment each decision
// variable stands for, so a solve result can be decoded back into roster
// state.
type ExactModel struct {
	Model *solver.Model

	candidates []model.Assignment
	vars       []solver.Var
}

// BuildModel constructs the exact-phase model. Decision variables exist
// only for (provider, facility, shift, day) combinations where
// credentialing, coverage and availability all hold, which keeps the model
// sparse and makes several invariants structural: no variable, no way to
// violate them.
func (e *Engine) BuildModel() *ExactModel {
	m := solver.NewModel("monthly_roster")
	em := &ExactModel{Model: m}

	xByWorking := map[model.WorkingShift][]solver.Term{}
	volByWorking := map[model.WorkingShift][]solver.Term{}
	xBySlot := map[model.Slot][]solver.Term{}
	groupAByDay := map[providerDay][]solver.Term{}
	groupBByDay := map[providerDay][]solver.Term{}

	for _, p := range e.providers {
		for _, slot := range e.slots {
			if !p.CredentialedAt(slot.Facility) {
				continue
			}
			if !p.Availability.Allows(slot.Day, slot.Shift) {
				continue
			}

			v := m.AddBool(fmt.Sprintf("x_%s_%s_%s_%d",
				sanitize(p.Key), sanitize(slot.Facility), slot.Shift, slot.Day))
			em.vars = append(em.vars, v)
			em.candidates = append(em.candidates, model.Assignment{
				Provider: p.Key, Facility: slot.Facility, Shift: slot.Shift, Day: slot.Day,
			})

			ws := model.WorkingShift{Provider: p.Key, Shift: slot.Shift, Day: slot.Day}
			xByWorking[ws] = append(xByWorking[ws], solver.Term{Var: v, Coeff: 1})
			volByWorking[ws] = append(volByWorking[ws], solver.Term{Var: v, Coeff: e.volume(slot.Facility, slot.Shift)})
			xBySlot[slot] = append(xBySlot[slot], solver.Term{Var: v, Coeff: 1})

			if slot.Shift == model.ShiftMD2 {
				pd := providerDay{provider: p.Key, day: slot.Day}
				if e.groupA[slot.Facility] {
					groupAByDay[pd] = append(groupAByDay[pd], solver.Term{Var: v, Coeff: 1})
				} else if e.groupB[slot.Facility] {
					groupBByDay[pd] = append(groupBByDay[pd], solver.Term{Var: v, Coeff: 1})
				}
			}
		}
	}

	// Working indicators, channeled to their facility variables:
	// w=1 forces at least one assignment, any assignment forces w=1.
	working := map[model.WorkingShift]solver.Var{}
	for _, p := range e.providers {
		for _, shift := range model.ShiftTypes() {
			for _, day := range e.month.Days() {
				ws := model.WorkingShift{Provider: p.Key, Shift: shift, Day: day}
				group := xByWorking[ws]
				if len(group) == 0 {
					continue
				}
				w := m.AddBool(fmt.Sprintf("w_%s_%s_%d", sanitize(p.Key), shift, day))
				working[ws] = w

				tag := fmt.Sprintf("%s_%s_%d", sanitize(p.Key), shift, day)
				m.Add(solver.SumAtLeast("works_"+tag,
					append(cloneTerms(group), solver.Term{Var: w, Coeff: -1}), 0))
				m.Add(solver.SumAtMost("works_cap_"+tag,
					append(cloneTerms(group), solver.Term{Var: w, Coeff: -float64(len(group))}), 0))
			}
		}
	}

	// Slot-filled indicators drive the objective.
	var objective []solver.Term
	for _, slot := range e.slots {
		eligible := xBySlot[slot]
		if len(eligible) == 0 {
			continue
		}
		tag := fmt.Sprintf("%s_%s_%d", sanitize(slot.Facility), slot.Shift, slot.Day)
		filled := m.AddBool("filled_" + tag)
		m.Add(solver.SumAtLeast("fill_"+tag,
			append(cloneTerms(eligible), solver.Term{Var: filled, Coeff: -1}), 0))
		m.Add(solver.SumAtMost("fill_cap_"+tag,
			append(cloneTerms(eligible), solver.Term{Var: filled, Coeff: -float64(len(eligible))}), 0))
		objective = append(objective, solver.Term{Var: filled, Coeff: 1})
	}

	e.addQuotaConstraints(m, working)
	e.addVolumeConstraints(m, working, volByWorking)
	e.addWindowConstraints(m, working)
	e.addDailyHourConstraints(m, working)
	e.addSiteGroupConstraints(m, groupAByDay, groupBByDay)

	m.Maximize(objective)
	return em
}

// addQuotaConstraints caps each provider's working shifts: total against
// min(quota, monthly ceiling), weekends and PM against their quotas. Under
// the exact policy a bounded total quota becomes an equality target.
func (e *Engine) addQuotaConstraints(m *solver.Model, working map[model.WorkingShift]solver.Var) {
	for _, p := range e.providers {
		var total, weekend, pm []solver.Term
		for _, shift := range model.ShiftTypes() {
			for _, day := range e.month.Days() {
				w, ok := working[model.WorkingShift{Provider: p.Key, Shift: shift, Day: day}]
				if !ok {
					continue
				}
				term := solver.Term{Var: w, Coeff: 1}
				total = append(total, term)
				if e.month.IsWeekend(day) {
					weekend = append(weekend, term)
				}
				if shift == model.ShiftPM {
					pm = append(pm, term)
				}
			}
		}
		if len(total) == 0 {
			continue
		}

		limit := model.MonthlyShiftCeiling
		if p.TotalQuota.Bounded() && int(p.TotalQuota) < limit {
			limit = int(p.TotalQuota)
		}
		tag := sanitize(p.Key)
		if e.quotaPolicy(p.Class) == QuotaExact && p.TotalQuota.Bounded() {
			m.Add(solver.SumEquals("quota_total_"+tag, total, float64(limit)))
		} else {
			m.Add(solver.SumAtMost("quota_total_"+tag, total, float64(limit)))
		}
		if p.WeekendQuota.Bounded() && len(weekend) > 0 {
			m.Add(solver.SumAtMost("quota_weekend_"+tag, weekend, float64(p.WeekendQuota)))
		}
		if p.PMQuota.Bounded() && len(pm) > 0 {
			m.Add(solver.SumAtMost("quota_pm_"+tag, pm, float64(p.PMQuota)))
		}
	}
}

// addVolumeConstraints keeps each working shift's absorbed facility volume
// inside the shift type's band: the maximum holds unconditionally (an idle
// shift absorbs nothing), the minimum only binds while the working
// indicator is on.
func (e *Engine) addVolumeConstraints(m *solver.Model, working map[model.WorkingShift]solver.Var, volByWorking map[model.WorkingShift][]solver.Term) {
	for _, p := range e.providers {
		for _, shift := range model.ShiftTypes() {
			for _, day := range e.month.Days() {
				ws := model.WorkingShift{Provider: p.Key, Shift: shift, Day: day}
				volTerms := volByWorking[ws]
				w, ok := working[ws]
				if len(volTerms) == 0 || !ok {
					continue
				}
				spec := shift.Spec()
				tag := fmt.Sprintf("%s_%s_%d", sanitize(p.Key), shift, day)
				m.Add(solver.SumAtMost("volume_max_"+tag, volTerms, spec.MaxVolume))
				m.Add(solver.SumAtLeast("volume_min_"+tag,
					append(cloneTerms(volTerms), solver.Term{Var: w, Coeff: -spec.MinVolume}), 0))
			}
		}
	}
}

// addWindowConstraints bounds working shifts inside every full sliding
// window: each shift type against its own rule and MD1+PM against the
// combined rule.
func (e *Engine) addWindowConstraints(m *solver.Model, working map[model.WorkingShift]solver.Var) {
	dayCount := e.month.DayCount()
	for _, p := range e.providers {
		for _, shift := range model.ShiftTypes() {
			rule := shift.Spec().Window
			for _, start := range windowStarts(dayCount, rule.Span) {
				terms := e.windowTerms(working, p.Key, []model.ShiftType{shift}, start, rule.Span)
				if len(terms) == 0 {
					continue
				}
				name := fmt.Sprintf("window_%s_%s_%d", shift, sanitize(p.Key), start)
				m.Add(solver.SumAtMost(name, terms, float64(rule.Max)))
			}
		}

		combined := model.CombinedMD1PMWindow()
		for _, start := range windowStarts(dayCount, combined.Span) {
			terms := e.windowTerms(working, p.Key, []model.ShiftType{model.ShiftMD1, model.ShiftPM}, start, combined.Span)
			if len(terms) == 0 {
				continue
			}
			name := fmt.Sprintf("window_MD1PM_%s_%d", sanitize(p.Key), start)
			m.Add(solver.SumAtMost(name, terms, float64(combined.Max)))
		}
	}
}

func (e *Engine) windowTerms(working map[model.WorkingShift]solver.Var, provider string, series []model.ShiftType, start, span int) []solver.Term {
	var terms []solver.Term
	end := start + span - 1
	if end > e.month.DayCount() {
		end = e.month.DayCount()
	}
	for day := start; day <= end; day++ {
		for _, shift := range series {
			if w, ok := working[model.WorkingShift{Provider: provider, Shift: shift, Day: day}]; ok {
				terms = append(terms, solver.Term{Var: w, Coeff: 1})
			}
		}
	}
	return terms
}

// addDailyHourConstraints caps each provider's shift hours per day. With
// every shift type at 8 or 12 hours and the cap at 12, this is the
// one-working-shift-per-day rule.
func (e *Engine) addDailyHourConstraints(m *solver.Model, working map[model.WorkingShift]solver.Var) {
	for _, p := range e.providers {
		for _, day := range e.month.Days() {
			var terms []solver.Term
			for _, shift := range model.ShiftTypes() {
				if w, ok := working[model.WorkingShift{Provider: p.Key, Shift: shift, Day: day}]; ok {
					terms = append(terms, solver.Term{Var: w, Coeff: float64(shift.Spec().Hours)})
				}
			}
			if len(terms) == 0 {
				continue
			}
			name := fmt.Sprintf("hours_%s_%d", sanitize(p.Key), day)
			m.Add(solver.SumAtMost(name, terms, model.DailyHourCap))
		}
	}
}

// addSiteGroupConstraints enforces the MD2 mutual exclusion: where a
// provider has same-day MD2 candidates in both restricted groups, group
// indicators are channeled to their variables and at most one may be on.
func (e *Engine) addSiteGroupConstraints(m *solver.Model, groupAByDay, groupBByDay map[providerDay][]solver.Term) {
	for _, p := range e.providers {
		for _, day := range e.month.Days() {
			pd := providerDay{provider: p.Key, day: day}
			groupA := groupAByDay[pd]
			groupB := groupBByDay[pd]
			if len(groupA) == 0 || len(groupB) == 0 {
				continue
			}

			tag := fmt.Sprintf("%s_%d", sanitize(p.Key), day)
			gA := m.AddBool("gA_" + tag)
			gB := m.AddBool("gB_" + tag)
			m.Add(solver.SumAtLeast("siteA_"+tag,
				append(cloneTerms(groupA), solver.Term{Var: gA, Coeff: -1}), 0))
			m.Add(solver.SumAtMost("siteA_cap_"+tag,
				append(cloneTerms(groupA), solver.Term{Var: gA, Coeff: -float64(len(groupA))}), 0))
			m.Add(solver.SumAtLeast("siteB_"+tag,
				append(cloneTerms(groupB), solver.Term{Var: gB, Coeff: -1}), 0))
			m.Add(solver.SumAtMost("siteB_cap_"+tag,
				append(cloneTerms(groupB), solver.Term{Var: gB, Coeff: -float64(len(groupB))}), 0))
			m.Add(solver.SumAtMost("site_excl_"+tag,
				[]solver.Term{{Var: gA, Coeff: 1}, {Var: gB, Coeff: 1}}, 1))
		}
	}
}

func (e *Engine) quotaPolicy(class model.ContractClass) QuotaPolicy {
	if class == model.ClassFixed {
		return e.cfg.FixedQuotaPolicy
	}
	return e.cfg.IndependentQuotaPolicy
}

// DecodeSolution replays a usable solve result into roster state.
func (e *Engine) DecodeSolution(em *ExactModel, result *solver.Result) *State {
	st := newState()
	for i, v := range em.vars {
		if !result.Value(v) {
			continue
		}
		a := em.candidates[i]
		st.commit(a, e.volume(a.Facility, a.Shift), e.month.IsWeekend(a.Day))
	}
	return st
}

func cloneTerms(terms []solver.Term) []solver.Term {
	return append([]solver.Term(nil), terms...)
}

func sanitize(s string) string {
	return strings.NewReplacer(" ", "_", "(", "", ")", "", ",", "").Replace(s)
}
