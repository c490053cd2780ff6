package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medroster/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "roster <run_id> <variation>",
		Short: "Show the assignments of one saved roster variation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]
			variation := args[1]

			if app.Database == nil {
				return fmt.Errorf("no database configured - set databaseURL in medroster_config.yaml")
			}

			app.Logger.Debug("roster command",
				zap.String("run_id", runID),
				zap.String("variation", variation))

			assignments, err := services.ViewRoster(app.Ctx, app.Database, app.Logger, runID, variation)
			if err != nil {
				return err
			}

			fmt.Printf("\nRoster %s (%s)\n\n", runID, variation)

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
				fmt.Printf("%-4d  %-*s  %-5s  %s\n", a.Day, facilityColWidth, a.Facility, a.Shift, a.Provider)
			}
			fmt.Printf("\n%d assignments\n", len(assignments))

			return nil
		},
	}
}
