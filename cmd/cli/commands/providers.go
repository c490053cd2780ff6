package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"medroster/pkg/core/catalog"
	"medroster/pkg/core/model"
	"medroster/pkg/core/services"
)

// ProvidersCmd creates the providers command
func ProvidersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "providers <input_file>",
		Short: "List the providers of an input bundle after normalization",
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

			fmt.Printf("\nFound %d providers:\n\n", len(runInput.Providers))
			for _, p := range runInput.Providers {
				availableDays := 0
				for day := range p.Availability {
					if len(p.Availability[day]) > 0 {
						availableDays++
					}
				}

				fmt.Printf("- %s (%s)\n", p.Key, p.Class)
				fmt.Printf("    quotas: total %s, weekend %s, PM %s\n",
					formatQuota(p.TotalQuota),
					formatQuota(p.WeekendQuota),
					formatQuota(p.PMQuota))
				fmt.Printf("    prefers: %s\n", formatShiftSet(p.Preferred))
				fmt.Printf("    credentials: %s\n", formatFacilities(p.Credentials))
				fmt.Printf("    available: %d/%d days\n", availableDays, runInput.Month.DayCount())
			}

			return nil
		},
	}
}

func formatQuota(q model.Quota) string {
	if !q.Bounded() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", int(q))
}

func formatShiftSet(set model.ShiftSet) string {
	var names []string
	for _, shift := range model.ShiftTypes() {
		if set.Has(shift) {
			names = append(names, string(shift))
		}
	}
	if len(names) == 0 {
		return "any"
	}
	return strings.Join(names, ", ")
}

func formatFacilities(credentials map[string]bool) string {
	var names []string
	for facility := range credentials {
		names = append(names, facility)
	}
	if len(names) == 0 {
		return "none"
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
