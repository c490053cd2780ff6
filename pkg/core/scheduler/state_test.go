package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medroster/pkg/core/model"
)

func TestStateCommit_SecondFacilityJoinsWorkingShift(t *testing.T) {
	st := newState()

	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 3}, 6, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "BMC", Shift: model.ShiftMD1, Day: 3}, 5, false)

	assert.Equal(t, 1, st.WorkingShifts("Reyes"))
	assert.Equal(t, 11.0, st.volume[model.WorkingShift{Provider: "Reyes", Shift: model.ShiftMD1, Day: 3}])
	assert.True(t, st.Covered(model.Slot{Facility: "AMC", Shift: model.ShiftMD1, Day: 3}))
	assert.True(t, st.Covered(model.Slot{Facility: "BMC", Shift: model.ShiftMD1, Day: 3}))
	assert.Len(t, st.assignments, 2)
}

func TestStateCommit_CountersTrackWeekendAndPM(t *testing.T) {
	st := newState()

	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftPM, Day: 4}, 7, true)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 5}, 6, true)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 7}, 6, false)

	assert.Equal(t, 3, st.shiftCount["Reyes"])
	assert.Equal(t, 2, st.weekendCount["Reyes"])
	assert.Equal(t, 1, st.pmCount["Reyes"])
}

func TestStateCommit_TracksMD2Sites(t *testing.T) {
	st := newState()

	st.commit(model.Assignment{Provider: "Reyes", Facility: "NHMC", Shift: model.ShiftMD2, Day: 9}, 8, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD2, Day: 9}, 4, false)

	sites := st.md2Sites[providerDay{provider: "Reyes", day: 9}]
	assert.True(t, sites["NHMC"])
	assert.True(t, sites["AMC"])
}

func TestStateClone_IsIndependent(t *testing.T) {
	base := newState()
	base.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 1}, 6, false)

	derived := base.clone()
	derived.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftPM, Day: 2}, 7, false)
	derived.commit(model.Assignment{Provider: "Quinn", Facility: "NHMC", Shift: model.ShiftMD2, Day: 2}, 9, false)

	assert.Equal(t, 1, base.shiftCount["Reyes"])
	assert.Zero(t, base.pmCount["Reyes"])
	assert.Zero(t, base.shiftCount["Quinn"])
	assert.Len(t, base.assignments, 1)
	assert.False(t, base.Covered(model.Slot{Facility: "AMC", Shift: model.ShiftPM, Day: 2}))
	assert.Empty(t, base.md2Sites[providerDay{provider: "Quinn", day: 2}])

	assert.Equal(t, 2, derived.shiftCount["Reyes"])
	assert.Len(t, derived.assignments, 3)
}

func TestStateDailyHours(t *testing.T) {
	st := newState()
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 6}, 6, false)

	assert.Equal(t, 8, st.dailyHours("Reyes", 6))
	assert.Zero(t, st.dailyHours("Reyes", 7))
}

func TestStateWindowFits_BlocksSaturatedWindow(t *testing.T) {
	st := newState()
	for day := 1; day <= 4; day++ {
		st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: day}, 6, false)
	}

	rule := model.ShiftMD1.Spec().Window
	assert.False(t, st.windowFits("Reyes", []model.ShiftType{model.ShiftMD1}, 31, 5, rule))
	assert.True(t, st.windowFits("Reyes", []model.ShiftType{model.ShiftMD1}, 31, 9, rule))
}

func TestStateWindowFits_CombinedSeriesCountsBothTypes(t *testing.T) {
	st := newState()
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 1}, 6, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 2}, 6, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftPM, Day: 3}, 7, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftPM, Day: 4}, 7, false)

	series := []model.ShiftType{model.ShiftMD1, model.ShiftPM}
	rule := model.CombinedMD1PMWindow()
	assert.False(t, st.windowFits("Reyes", series, 31, 5, rule))
	// MD1 alone is fine: only two MD1 shifts sit in its windows.
	assert.True(t, st.windowFits("Reyes", []model.ShiftType{model.ShiftMD1}, 31, 5, model.ShiftMD1.Spec().Window))
}

func TestStateWindowFits_SameDayDoubleBookingCountsOnce(t *testing.T) {
	st := newState()
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 3}, 6, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftPM, Day: 3}, 7, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftMD1, Day: 4}, 6, false)
	st.commit(model.Assignment{Provider: "Reyes", Facility: "AMC", Shift: model.ShiftPM, Day: 5}, 7, false)

	// Days 3 (counted once), 4 and 5 plus the candidate make four.
	series := []model.ShiftType{model.ShiftMD1, model.ShiftPM}
	assert.True(t, st.windowFits("Reyes", series, 31, 6, model.CombinedMD1PMWindow()))
}
