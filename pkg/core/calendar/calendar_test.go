package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medroster/pkg/core/model"
)

func TestNewMonth_DerivesWeekendsFromCalendar(t *testing.T) {
	month, err := NewMonth(2025, time.July)

	require.NoError(t, err)
	assert.Equal(t, 31, month.DayCount())
	// July 2025: Saturdays 5, 12, 19, 26 and Sundays 6, 13, 20, 27.
	expected := model.DaySet{5: true, 6: true, 12: true, 13: true, 19: true, 20: true, 26: true, 27: true}
	assert.Equal(t, expected, month.Weekends())
	assert.True(t, month.IsWeekend(5))
	assert.False(t, month.IsWeekend(7))
}

func TestNewMonth_ShortMonth(t *testing.T) {
	month, err := NewMonth(2025, time.February)

	require.NoError(t, err)
	assert.Equal(t, 28, month.DayCount())
	assert.Equal(t, 28, len(month.Days()))
	assert.False(t, month.Contains(29))
}

func TestNewMonth_InvalidMonth(t *testing.T) {
	_, err := NewMonth(2025, time.Month(13))

	assert.Error(t, err)
}

func TestGenericMonth_StandardTemplate(t *testing.T) {
	month := GenericMonth()

	assert.Equal(t, 31, month.DayCount())
	expected := model.DaySet{4: true, 5: true, 11: true, 12: true, 18: true, 19: true, 25: true, 26: true}
	assert.Equal(t, expected, month.Weekends())
}

func TestParseDayList_FullRange(t *testing.T) {
	days, warnings := ParseDayList("1-31", 31)

	assert.Len(t, days, 31)
	assert.Equal(t, 1, days[0])
	assert.Equal(t, 31, days[30])
	assert.Empty(t, warnings)
}

func TestParseDayList_MultipleRanges(t *testing.T) {
	days, warnings := ParseDayList("4-5, 11-12, 18-19, 25-26", 31)

	assert.Equal(t, []int{4, 5, 11, 12, 18, 19, 25, 26}, days)
	assert.Empty(t, warnings)
}

func TestParseDayList_MixedRangesAndSingles(t *testing.T) {
	days, warnings := ParseDayList("1-3, 15, 20", 31)

	assert.Equal(t, []int{1, 2, 3, 15, 20}, days)
	assert.Empty(t, warnings)
}

func TestParseDayList_DashVariants(t *testing.T) {
	doubled, _ := ParseDayList("1--5", 31)
	enDash, _ := ParseDayList("1–5", 31)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, doubled)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, enDash)
}

func TestParseDayList_Blank(t *testing.T) {
	days, warnings := ParseDayList("   ", 31)

	assert.Empty(t, days)
	assert.Empty(t, warnings)
}

func TestParseDayList_MalformedTokensAreDropped(t *testing.T) {
	days, warnings := ParseDayList("abc, 5, 7-x", 31)

	assert.Equal(t, []int{5}, days)
	assert.Len(t, warnings, 2)
}

func TestParseDayList_OutOfMonthDaysAreDropped(t *testing.T) {
	days, warnings := ParseDayList("28-31", 30)

	assert.Equal(t, []int{28, 29, 30}, days)
	assert.Len(t, warnings, 1)
}

func TestParseDayList_OverlappingRangesDeduplicate(t *testing.T) {
	days, warnings := ParseDayList("1-3, 2-4", 31)

	assert.Equal(t, []int{1, 2, 3, 4}, days)
	assert.Empty(t, warnings)
}

func TestParseDayList_InvertedRange(t *testing.T) {
	days, warnings := ParseDayList("9-5", 31)

	assert.Empty(t, days)
	assert.Len(t, warnings, 1)
}
