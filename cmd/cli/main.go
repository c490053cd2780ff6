package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"medroster/cmd/cli/commands"
	"medroster/internal/config"
	"medroster/pkg/postgres"
	"medroster/pkg/solver/glpk"
	"medroster/pkg/utils/logging"
)

var (
	configPath string
	verbose    bool
)

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "medroster",
		Short: "Medroster CLI - Build monthly shift rosters for medical providers",
		Long: `A CLI tool for building one-month shift rosters across clinic facilities.
It models the month as a constraint problem for an exact solver, falls back
to greedy assignment when the solver yields nothing usable, and ranks three
completion variations by provider satisfaction.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (defaults to medroster_config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")

	rootCmd.AddCommand(commands.ScheduleCmd(app))
	rootCmd.AddCommand(commands.ProvidersCmd(app))
	rootCmd.AddCommand(commands.SlotsCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, the solver backend and the database
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Load configuration; a missing config file means defaults
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
		if errors.Is(err, config.ErrConfigNotFound) {
			app.Logger.Info("No config file found, using defaults")
			app.Cfg = config.Default()
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded")

	app.Solver = glpk.New()

	// Connect to the database when one is configured
	if app.Cfg.DatabaseURL != "" {
		app.Logger.Info("Connecting to database")
		database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Database = database
		app.Logger.Info("Database initialized successfully")
	}

	return nil
}
