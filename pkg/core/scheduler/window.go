package scheduler

// Sliding windows are the one constraint shape shared by the exact model
// and the greedy phases, so both build on the same start enumeration
// rather than repeating the loop arithmetic.

// windowStarts returns the first day of every full span-day window in a
// month of dayCount days. A month shorter than the span gets a single
// window starting at day 1; trailing partial windows are subsumed by the
// last full one and are not enumerated.
func windowStarts(dayCount, span int) []int {
	if span <= 0 || dayCount <= 0 {
		return nil
	}
	last := dayCount - span + 1
	if last < 1 {
		last = 1
	}
	starts := make([]int, 0, last)
	for start := 1; start <= last; start++ {
		starts = append(starts, start)
	}
	return starts
}

// windowStartsContaining returns the subset of windowStarts whose window
// includes day.
func windowStartsContaining(dayCount, span, day int) []int {
	if span <= 0 || dayCount <= 0 || day < 1 || day > dayCount {
		return nil
	}
	first := day - span + 1
	if first < 1 {
		first = 1
	}
	last := dayCount - span + 1
	if last < 1 {
		last = 1
	}
	if last > day {
		last = day
	}
	starts := make([]int, 0, last-first+1)
	for start := first; start <= last; start++ {
		starts = append(starts, start)
	}
	return starts
}
