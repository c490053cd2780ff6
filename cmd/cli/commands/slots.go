package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"medroster/pkg/core/catalog"
	"medroster/pkg/core/model"
	"medroster/pkg/core/services"
)

// SlotsCmd creates the slots command
func SlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slots <input_file>",
		Short: "Show the slot catalog derived from an input bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := catalog.LoadInput(args[0])
			if err != nil {
				return err
			}

			runInput, err := services.BuildRunInput(raw, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			// Group days by facility and shift type
			type facilityShift struct {
				facility string
				shift    model.ShiftType
			}
			days := make(map[facilityShift][]int)
			for _, slot := range runInput.Slots {
				key := facilityShift{slot.Facility, slot.Shift}
				days[key] = append(days[key], slot.Day)
			}

			keys := make([]facilityShift, 0, len(days))
			for key := range days {
				keys = append(keys, key)
			}
			sort.Slice(keys, func(i, j int) bool {
				if keys[i].facility != keys[j].facility {
					return keys[i].facility < keys[j].facility
				}
				return keys[i].shift.Order() < keys[j].shift.Order()
			})

			fmt.Printf("\nSlot catalog: %d slots across %d facility shifts\n\n", len(runInput.Slots), len(keys))
			for _, key := range keys {
				sort.Ints(days[key])
				fmt.Printf("- %s %s (%d days): %s\n", key.facility, key.shift, len(days[key]), formatDayRuns(days[key]))
			}
			fmt.Println()

			return nil
		},
	}
}

// formatDayRuns compresses a sorted day list into range notation,
// "1-5, 8, 11-12".
func formatDayRuns(days []int) string {
	if len(days) == 0 {
		return ""
	}

	var runs []string
	start := days[0]
	prev := days[0]
	flush := func(end int) {
		if start == end {
			runs = append(runs, strconv.Itoa(start))
		} else {
			runs = append(runs, fmt.Sprintf("%d-%d", start, end))
		}
	}

	for _, day := range days[1:] {
		if day == prev+1 {
			prev = day
			continue
		}
		flush(prev)
		start = day
		prev = day
	}
	flush(prev)

	return strings.Join(runs, ", ")
}
