package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"medroster/pkg/core/model"
)

// Month is the scheduling horizon: a run of numbered days and the subset
// of them that are weekend days.
type Month struct {
	Year     int
	Month    time.Month
	dayCount int
	weekends model.DaySet
}

// NewMonth anchors the horizon to a real calendar month and derives its
// weekend days from the calendar.
func NewMonth(year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("invalid month %d", month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rule, err := rrule.StrToRRule("FREQ=WEEKLY;BYDAY=SA,SU")
	if err != nil {
		return Month{}, fmt.Errorf("failed to parse weekend rule: %w", err)
	}
	rule.DTStart(first)

	weekends := model.DaySet{}
	for _, occurrence := range rule.Between(first, last, true) {
		weekends[occurrence.Day()] = true
	}

	return Month{
		Year:     year,
		Month:    month,
		dayCount: last.Day(),
		weekends: weekends,
	}, nil
}

// GenericMonth is the unanchored 31-day planning month used when no real
// month is configured. Weekend days follow the standard roster template
// with the first weekend on the 4th.
func GenericMonth() Month {
	return Month{
		dayCount: 31,
		weekends: model.DaySet{4: true, 5: true, 11: true, 12: true, 18: true, 19: true, 25: true, 26: true},
	}
}

// DayCount returns the number of days in the month.
func (m Month) DayCount() int {
	return m.dayCount
}

// Days returns every day of the month in ascending order.
func (m Month) Days() []int {
	days := make([]int, m.dayCount)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func (m Month) Contains(day int) bool {
	return day >= 1 && day <= m.dayCount
}

func (m Month) IsWeekend(day int) bool {
	return m.weekends.Has(day)
}

// Weekends returns the weekend days of the month.
func (m Month) Weekends() model.DaySet {
	weekends := model.DaySet{}
	for day := range m.weekends {
		weekends[day] = true
	}
	return weekends
}
