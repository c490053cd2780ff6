package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medroster/pkg/core/services"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs [count]",
		Short: "List recent scheduling runs and their ranked variations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 5
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 1 {
					return fmt.Errorf("count must be a positive integer, got: %s", args[0])
				}
				count = parsed
			}

			if app.Database == nil {
				return fmt.Errorf("no database configured - set databaseURL in medroster_config.yaml")
			}

			app.Logger.Debug("runs command", zap.Int("count", count))

			result, err := services.ViewRuns(app.Ctx, app.Database, app.Logger, count)
			if err != nil {
				return err
			}

			// ANSI color codes
			const (
				colorReset = "\033[0m"
				colorGreen = "\033[32m"
				colorRed   = "\033[31m"
				colorBold  = "\033[1m"
			)

			fmt.Printf("\nRecent scheduling runs (last %d)\n\n", len(result.Runs))

			for _, run := range result.Runs {
				fmt.Printf("%s%s%s\n", colorBold, run.ID, colorReset)
				fmt.Printf("  Month:   %s\n", monthLabel(run.Year, run.Month))
				fmt.Printf("  Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
				if run.UsedFallback {
					fmt.Printf("  Solver:  %s (greedy fallback used)\n", run.SolverStatus)
				} else {
					fmt.Printf("  Solver:  %s\n", run.SolverStatus)
				}

				for _, variation := range result.Variations[run.ID] {
					line := fmt.Sprintf("  %d. %-12s  score %.4f  coverage %.1f%%  uncovered %d  violations %d",
						variation.Rank,
						variation.Name,
						variation.Score,
						variation.CoverageRate*100,
						variation.Uncovered,
						variation.Violations)
					switch {
					case variation.Violations > 0:
						fmt.Printf("%s%s%s\n", colorRed, line, colorReset)
					case variation.Uncovered == 0:
						fmt.Printf("%s%s%s\n", colorGreen, line, colorReset)
					default:
						fmt.Println(line)
					}
				}
				fmt.Println(strings.Repeat("-", 72))
			}

			return nil
		},
	}
}
