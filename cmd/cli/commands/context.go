package commands

import (
	"context"

	"go.uber.org/zap"

	"medroster/internal/config"
	"medroster/pkg/db"
	"medroster/pkg/solver"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Solver   solver.Solver
	Database db.Database // nil when no database is configured
	Logger   *zap.Logger
	Ctx      context.Context
}
