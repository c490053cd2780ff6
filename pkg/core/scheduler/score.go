package scheduler

import (
	"sort"

	"medroster/pkg/core/model"
)

// Score measures how hard a state leans on quota overruns. Each provider
// contributes their weighted excess over bounded quotas; the total is
// normalised by the worst case of every provider overrunning by the
// monthly ceiling at the heaviest weight. Lower is better and zero means
// no bounded quota was exceeded.
func (e *Engine) Score(st *State) Score {
	w := e.cfg.Weights
	sc := Score{CoveredSlots: len(st.covered)}

	for _, p := range e.providers {
		worked := st.shiftCount[p.Key]
		if worked == 0 {
			continue
		}

		total := excess(worked, p.TotalQuota)
		pm := excess(st.pmCount[p.Key], p.PMQuota)
		weekend := excess(st.weekendCount[p.Key], p.WeekendQuota)

		weighted := float64(total)*w.Total + float64(pm)*w.PM + float64(weekend)*w.Weekend
		sc.TotalWeightedExcess += weighted
		sc.TotalExcess += total
		sc.PMExcess += pm
		sc.WeekendExcess += weekend
		if weighted > 0 {
			sc.ProvidersAffected++
		}
	}

	if worst := float64(len(e.providers)) * model.MonthlyShiftCeiling * w.Weekend; worst > 0 {
		sc.Value = sc.TotalWeightedExcess / worst
	}

	sc.UncoveredSlots = len(e.slots) - sc.CoveredSlots
	if len(e.slots) > 0 {
		sc.CoverageRate = float64(sc.CoveredSlots) / float64(len(e.slots))
	}
	return sc
}

func excess(count int, q model.Quota) int {
	if !q.Bounded() || count <= int(q) {
		return 0
	}
	return count - int(q)
}

// Rank orders rosters by ascending score and stamps 1-based ranks. The
// sort is stable, so equal scores keep the variation evaluation order.
func Rank(rosters []Roster) {
	sort.SliceStable(rosters, func(i, j int) bool {
		return rosters[i].Score.Value < rosters[j].Score.Value
	})
	for i := range rosters {
		rosters[i].Rank = i + 1
	}
}
