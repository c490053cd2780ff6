package scheduler

import (
	"medroster/pkg/core/calendar"
	"medroster/pkg/core/model"
)

// Shared fixtures. The baseline provider is maximally permissive, so each
// test tightens only the dimension it exercises.

func fullAvailability(days int) model.Availability {
	av := model.Availability{}
	for day := 1; day <= days; day++ {
		av[day] = model.AllShifts()
	}
	return av
}

func testProvider(key string, facilities ...string) model.Provider {
	creds := make(map[string]bool, len(facilities))
	for _, f := range facilities {
		creds[f] = true
	}
	return model.Provider{
		Key:          key,
		Class:        model.ClassIndependent,
		TotalQuota:   model.QuotaUnlimited,
		WeekendQuota: model.QuotaUnlimited,
		PMQuota:      model.QuotaUnlimited,
		Preferred:    model.ShiftSet{},
		Credentials:  creds,
		Availability: fullAvailability(31),
	}
}

func testFacility(key string, volumes map[model.ShiftType]float64) model.Facility {
	return model.Facility{Key: key, Volumes: volumes}
}

func slotsFor(facility string, shift model.ShiftType, days ...int) []model.Slot {
	out := make([]model.Slot, 0, len(days))
	for _, day := range days {
		out = append(out, model.Slot{Facility: facility, Shift: shift, Day: day})
	}
	return out
}

func newTestEngine(providers []model.Provider, facilities []model.Facility, slots []model.Slot) *Engine {
	return New(RunInput{
		Month:      calendar.GenericMonth(),
		Providers:  providers,
		Facilities: facilities,
		Slots:      slots,
		Config:     DefaultConfig(),
	})
}
