// Package scheduler is the assignment engine: it builds the exact-phase
// solver model, runs the greedy fallback and completion variations, scores
// each variation and validates the results. The engine itself performs no
// I/O; orchestration, solving and persistence live in the services layer.
package scheduler

import (
	"sort"

	"medroster/pkg/core/calendar"
	"medroster/pkg/core/model"
)

// Engine holds the read-only inputs of one scheduling run.
type Engine struct {
	month     calendar.Month
	providers []model.Provider
	volumes   map[string]map[model.ShiftType]float64
	slots     []model.Slot
	cfg       Config

	groupA map[string]bool
	groupB map[string]bool
}

// New prepares an engine. Providers are ordered by key and slots by
// (facility, shift, day); both orders double as the documented greedy
// tie-break order.
func New(input RunInput) *Engine {
	providers := make([]model.Provider, len(input.Providers))
	copy(providers, input.Providers)
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Key < providers[j].Key
	})

	slots := make([]model.Slot, len(input.Slots))
	copy(slots, input.Slots)
	sort.Slice(slots, func(i, j int) bool {
		return slotLess(slots[i], slots[j])
	})

	volumes := make(map[string]map[model.ShiftType]float64, len(input.Facilities))
	for _, facility := range input.Facilities {
		vols := make(map[model.ShiftType]float64, len(facility.Volumes))
		for shift, volume := range facility.Volumes {
			vols[shift] = volume
		}
		volumes[facility.Key] = vols
	}

	return &Engine{
		month:     input.Month,
		providers: providers,
		volumes:   volumes,
		slots:     slots,
		cfg:       input.Config,
		groupA:    toSet(input.Config.MD2GroupA),
		groupB:    toSet(input.Config.MD2GroupB),
	}
}

// Slots returns the slot catalog in engine order.
func (e *Engine) Slots() []model.Slot {
	return e.slots
}

func (e *Engine) volume(facility string, shift model.ShiftType) float64 {
	return e.volumes[facility][shift]
}

func slotLess(a, b model.Slot) bool {
	if a.Facility != b.Facility {
		return a.Facility < b.Facility
	}
	if a.Shift != b.Shift {
		return a.Shift.Order() < b.Shift.Order()
	}
	return a.Day < b.Day
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
