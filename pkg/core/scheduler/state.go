package scheduler

import (
	"medroster/pkg/core/model"
)

type providerDay struct {
	provider string
	day      int
}

// State is the mutable bookkeeping of one roster as it is built: committed
// assignments, the working-shift aggregate, absorbed facility volumes and
// per-provider counters. Each run and each variation owns its own State;
// variations clone the phase-1 base and never share.
type State struct {
	assignments  []model.Assignment
	covered      map[model.Slot][]string
	working      map[model.WorkingShift]bool
	volume       map[model.WorkingShift]float64
	shiftCount   map[string]int
	weekendCount map[string]int
	pmCount      map[string]int
	md2Sites     map[providerDay]map[string]bool
}

func newState() *State {
	return &State{
		covered:      map[model.Slot][]string{},
		working:      map[model.WorkingShift]bool{},
		volume:       map[model.WorkingShift]float64{},
		shiftCount:   map[string]int{},
		weekendCount: map[string]int{},
		pmCount:      map[string]int{},
		md2Sites:     map[providerDay]map[string]bool{},
	}
}

func (s *State) clone() *State {
	c := &State{
		assignments:  make([]model.Assignment, len(s.assignments)),
		covered:      make(map[model.Slot][]string, len(s.covered)),
		working:      make(map[model.WorkingShift]bool, len(s.working)),
		volume:       make(map[model.WorkingShift]float64, len(s.volume)),
		shiftCount:   make(map[string]int, len(s.shiftCount)),
		weekendCount: make(map[string]int, len(s.weekendCount)),
		pmCount:      make(map[string]int, len(s.pmCount)),
		md2Sites:     make(map[providerDay]map[string]bool, len(s.md2Sites)),
	}
	copy(c.assignments, s.assignments)
	for slot, providers := range s.covered {
		c.covered[slot] = append([]string(nil), providers...)
	}
	for ws, on := range s.working {
		c.working[ws] = on
	}
	for ws, vol := range s.volume {
		c.volume[ws] = vol
	}
	for p, n := range s.shiftCount {
		c.shiftCount[p] = n
	}
	for p, n := range s.weekendCount {
		c.weekendCount[p] = n
	}
	for p, n := range s.pmCount {
		c.pmCount[p] = n
	}
	for pd, sites := range s.md2Sites {
		copied := make(map[string]bool, len(sites))
		for site := range sites {
			copied[site] = true
		}
		c.md2Sites[pd] = copied
	}
	return c
}

// commit records an assignment. Counters only move when the assignment
// opens a new working shift; adding another facility to a shift the
// provider already works that day leaves every count unchanged.
func (s *State) commit(a model.Assignment, facilityVolume float64, weekend bool) {
	ws := a.WorkingShift()
	if !s.working[ws] {
		s.working[ws] = true
		s.shiftCount[a.Provider]++
		if weekend {
			s.weekendCount[a.Provider]++
		}
		if a.Shift == model.ShiftPM {
			s.pmCount[a.Provider]++
		}
	}
	s.volume[ws] += facilityVolume
	s.covered[a.Slot()] = append(s.covered[a.Slot()], a.Provider)
	s.assignments = append(s.assignments, a)

	if a.Shift == model.ShiftMD2 {
		pd := providerDay{provider: a.Provider, day: a.Day}
		if s.md2Sites[pd] == nil {
			s.md2Sites[pd] = map[string]bool{}
		}
		s.md2Sites[pd][a.Facility] = true
	}
}

// Covered reports whether the slot has at least one covering provider.
func (s *State) Covered(slot model.Slot) bool {
	return len(s.covered[slot]) > 0
}

// AssignmentCount returns the number of committed assignments.
func (s *State) AssignmentCount() int {
	return len(s.assignments)
}

// WorkingShifts returns how many working shifts the provider holds.
func (s *State) WorkingShifts(provider string) int {
	return s.shiftCount[provider]
}

func (s *State) dailyHours(provider string, day int) int {
	total := 0
	for _, shift := range model.ShiftTypes() {
		if s.working[model.WorkingShift{Provider: provider, Shift: shift, Day: day}] {
			total += shift.Spec().Hours
		}
	}
	return total
}

// windowFits reports whether the provider can take one more working shift
// of the series on candidateDay without any window of rule.Span days
// holding more than rule.Max working shifts. The series is the set of
// shift types counted together.
func (s *State) windowFits(provider string, series []model.ShiftType, dayCount, candidateDay int, rule model.WindowRule) bool {
	for _, start := range windowStartsContaining(dayCount, rule.Span, candidateDay) {
		count := 1 // the candidate
		end := start + rule.Span - 1
		if end > dayCount {
			end = dayCount
		}
		for day := start; day <= end; day++ {
			if day == candidateDay {
				continue
			}
			for _, shift := range series {
				if s.working[model.WorkingShift{Provider: provider, Shift: shift, Day: day}] {
					count++
					break
				}
			}
		}
		if count > rule.Max {
			return false
		}
	}
	return true
}
