package catalog

import (
	"sort"

	"go.uber.org/zap"

	"medroster/pkg/core/model"
)

// BuildSlots derives every coverage obligation: one slot per facility,
// shift type and coverage day, restricted to shift types the facility
// actually offers (volume above zero). The catalog is sorted by facility,
// shift order, day; slot iteration everywhere follows this order, so
// assignment outcomes are reproducible.
func BuildSlots(facilities Facilities, logger *zap.Logger) ([]model.Slot, error) {
	var slots []model.Slot
	for _, facility := range facilities.Facilities {
		for _, shift := range model.ShiftTypes() {
			coverage := facility.Coverage[shift]
			if len(coverage) == 0 {
				continue
			}
			if facility.Volumes[shift] <= 0 {
				logger.Warn("coverage requested for unoffered shift type, no slots created",
					zap.String("facility", facility.Key),
					zap.String("shift", string(shift)))
				continue
			}

			days := make([]int, 0, len(coverage))
			for day := range coverage {
				days = append(days, day)
			}
			sort.Ints(days)
			for _, day := range days {
				slots = append(slots, model.Slot{Facility: facility.Key, Shift: shift, Day: day})
			}
		}
	}

	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	logger.Debug("slot catalog built", zap.Int("slots", len(slots)))
	return slots, nil
}
