package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medroster/pkg/core/calendar"
	"medroster/pkg/core/catalog"
	"medroster/pkg/core/model"
	"medroster/pkg/core/scheduler"
	"medroster/pkg/core/services"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <input_file>",
		Short: "Build the month's roster from a raw input bundle",
		Long:  "Run the assignment engine over the providers, facilities and coverage in the input file, producing three ranked roster variations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			show, _ := cmd.Flags().GetString("variation")

			app.Logger.Debug("schedule command",
				zap.String("input", inputPath),
				zap.Bool("dry_run", dryRun))

			raw, err := catalog.LoadInput(inputPath)
			if err != nil {
				return err
			}

			runInput, err := services.BuildRunInput(raw, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			// A nil db.Database must stay a nil store interface.
			var store services.ScheduleMonthStore
			if app.Database != nil {
				store = app.Database
			}

			result, err := services.ScheduleMonth(app.Ctx, store, app.Solver, runInput, app.Cfg, app.Logger, dryRun)
			if err != nil {
				return fmt.Errorf("scheduling failed: %w", err)
			}

			// Display header
			fmt.Printf("\n✓ Scheduling completed!\n\n")
			fmt.Printf("Month:       %s (%d days)\n", monthLabel(result.Year, result.Month), runInput.Month.DayCount())
			if result.UsedFallback {
				fmt.Printf("Exact phase: %s (greedy fallback used)\n", result.SolverStatus)
			} else {
				fmt.Printf("Exact phase: %s\n", result.SolverStatus)
			}
			switch {
			case dryRun:
				fmt.Printf("Mode:        DRY RUN (not saved)\n")
			case result.RunID != "":
				fmt.Printf("Run ID:      %s\n", result.RunID)
			default:
				fmt.Printf("Mode:        not saved (no database configured)\n")
			}
			fmt.Println()

			printVariationSummary(result.Rosters)

			roster, err := pickRoster(result.Rosters, show)
			if err != nil {
				return err
			}
			printRoster(roster, runInput.Month, runInput.Slots)

			if dryRun {
				fmt.Println("This was a dry run. Use without --dry-run to save the results.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().String("variation", "", "Variation to print in full (defaults to the best ranked)")

	return cmd
}

func monthLabel(year, month int) string {
	if year == 0 {
		return "generic planning month"
	}
	return fmt.Sprintf("%04d-%02d", year, month)
}

// pickRoster selects the variation to print in full, the best ranked when
// no name was requested.
func pickRoster(rosters []scheduler.Roster, name string) (scheduler.Roster, error) {
	if name == "" {
		return rosters[0], nil
	}
	for _, roster := range rosters {
		if string(roster.Variation) == name {
			return roster, nil
		}
	}
	return scheduler.Roster{}, fmt.Errorf("unknown variation %q (want minimize, balanced or conservative)", name)
}

func printVariationSummary(rosters []scheduler.Roster) {
	// ANSI color codes
	const (
		colorReset  = "\033[0m"
		colorGreen  = "\033[32m"
		colorRed    = "\033[31m"
		colorYellow = "\033[33m"
	)

	fmt.Printf("Variations:\n\n")
	fmt.Printf("%-4s  %-12s  %-8s  %-8s  %-9s  %s\n", "Rank", "Variation", "Score", "Coverage", "Uncovered", "Violations")
	fmt.Printf("%s  %s  %s  %s  %s  %s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 12),
		strings.Repeat("-", 8),
		strings.Repeat("-", 8),
		strings.Repeat("-", 9),
		strings.Repeat("-", 10))

	for _, roster := range rosters {
		coverage := fmt.Sprintf("%.1f%%", roster.Score.CoverageRate*100)
		coverageColor := colorYellow
		if len(roster.Uncovered) == 0 {
			coverageColor = colorGreen
		}

		violations := fmt.Sprintf("%d", len(roster.Violations))
		if len(roster.Violations) > 0 {
			violations = fmt.Sprintf("%s%d%s", colorRed, len(roster.Violations), colorReset)
		}

		fmt.Printf("%4d  %-12s  %-8.4f  %s%-8s%s  %9d  %s\n",
			roster.Rank,
			string(roster.Variation),
			roster.Score.Value,
			coverageColor, coverage, colorReset,
			len(roster.Uncovered),
			violations)
	}
	fmt.Println()
}

func printRoster(roster scheduler.Roster, month calendar.Month, slots []model.Slot) {
	// ANSI color codes
	const (
		colorReset = "\033[0m"
		colorRed   = "\033[31m"
		colorDim   = "\033[2m"
	)

	fmt.Printf("Roster (%s):\n\n", string(roster.Variation))

	assignments := make([]model.Assignment, len(roster.Assignments))
	copy(assignments, roster.Assignments)
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Facility != b.Facility {
			return a.Facility < b.Facility
		}
		if a.Shift != b.Shift {
			return a.Shift.Order() < b.Shift.Order()
		}
		return a.Provider < b.Provider
	})

	// Calculate column widths
	facilityColWidth := 8
	providerColWidth := 8
	for _, a := range assignments {
		if len(a.Facility) > facilityColWidth {
			facilityColWidth = len(a.Facility)
		}
		if len(a.Provider) > providerColWidth {
			providerColWidth = len(a.Provider)
		}
	}

	fmt.Printf("%-4s  %-*s  %-5s  %s\n", "Day", facilityColWidth, "Facility", "Shift", "Provider")
	fmt.Printf("%s  %s  %s  %s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", facilityColWidth),
		strings.Repeat("-", 5),
		strings.Repeat("-", providerColWidth))

	for _, a := range assignments {
		day := fmt.Sprintf("%d", a.Day)
		if month.IsWeekend(a.Day) {
			day += "*"
		}
		fmt.Printf("%-4s  %-*s  %-5s  %s\n", day, facilityColWidth, a.Facility, string(a.Shift), a.Provider)
	}
	fmt.Printf("%s* = weekend day%s\n\n", colorDim, colorReset)

	// List the slots this variation left uncovered
	var uncovered []model.Slot
	for _, slot := range slots {
		if len(roster.Coverage[slot]) == 0 {
			uncovered = append(uncovered, slot)
		}
	}
	if len(uncovered) > 0 {
		sort.Slice(uncovered, func(i, j int) bool {
			a, b := uncovered[i], uncovered[j]
			if a.Day != b.Day {
				return a.Day < b.Day
			}
			if a.Facility != b.Facility {
				return a.Facility < b.Facility
			}
			return a.Shift.Order() < b.Shift.Order()
		})

		fmt.Printf("%sUncovered slots (%d):%s\n", colorRed, len(uncovered), colorReset)
		for _, slot := range uncovered {
			fmt.Printf("  • Day %d %s %s\n", slot.Day, slot.Facility, slot.Shift)
		}
		fmt.Println()
	}

	// Surface violations even though the engine already logged them
	if len(roster.Violations) > 0 {
		fmt.Printf("%sConstraint violations (%d):%s\n", colorRed, len(roster.Violations), colorReset)
		for _, violation := range roster.Violations {
			fmt.Printf("  • %s: %s\n", violation.Provider, violation.Description)
		}
		fmt.Println()
	}
}
