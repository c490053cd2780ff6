package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseDayList parses a coverage day expression into the days it names.
// Accepted forms: "1-31", "4-5, 11-12, 18-19", "15", and any comma mix of
// ranges and single days. En dashes and doubled dashes are tolerated.
// Blank input means no days. Tokens that fail to parse, inverted ranges
// and days outside [1, maxDay] are dropped and reported as warnings rather
// than failing the parse.
func ParseDayList(raw string, maxDay int) ([]int, []string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return nil, nil
	}

	// Spreadsheet exports mix dash characters.
	trimmed = strings.ReplaceAll(trimmed, "–", "-")
	trimmed = strings.ReplaceAll(trimmed, "--", "-")

	var warnings []string
	seen := map[int]bool{}

	addDay := func(day int, token string) {
		if day < 1 || day > maxDay {
			warnings = append(warnings, fmt.Sprintf("day %d in %q is outside the month, dropped", day, token))
			return
		}
		seen[day] = true
	}

	for _, part := range strings.Split(trimmed, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}

		if strings.Contains(token, "-") {
			bounds := strings.SplitN(token, "-", 2)
			start, startErr := strconv.Atoi(strings.TrimSpace(bounds[0]))
			end, endErr := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if startErr != nil || endErr != nil {
				warnings = append(warnings, fmt.Sprintf("could not parse range %q, dropped", token))
				continue
			}
			if start > end {
				warnings = append(warnings, fmt.Sprintf("inverted range %q, dropped", token))
				continue
			}
			for day := start; day <= end; day++ {
				addDay(day, token)
			}
			continue
		}

		day, err := strconv.Atoi(token)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not parse day %q, dropped", token))
			continue
		}
		addDay(day, token)
	}

	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days, warnings
}
