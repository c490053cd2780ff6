package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Year:                    2026,
		Month:                   3,
		SolverTimeBudgetSeconds: 120,
		SolverWorkers:           4,
		FixedQuotaPolicy:        "exact",
		IndependentQuotaPolicy:  "ceiling",
		MD2GroupA:               []string{"NHMC", "NMHMC"},
		MD2GroupB:               []string{"NMMC", "NBAMC"},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_GenericMonth(t *testing.T) {
	cfg := Default()

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_YearWithoutMonth(t *testing.T) {
	cfg := Default()
	cfg.Year = 2026

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "year and month must be set together")
}

func TestValidate_MonthOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Year = 2026
	cfg.Month = 13

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownQuotaPolicy(t *testing.T) {
	cfg := Default()
	cfg.FixedQuotaPolicy = "strict"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_OverlappingSiteGroups(t *testing.T) {
	cfg := Default()
	cfg.MD2GroupA = []string{"NHMC", "NMMC"}
	cfg.MD2GroupB = []string{"NMMC", "NBAMC"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "appears in both MD2 exclusion groups")
}

func TestDefault_AppliesAllDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultSolverTimeBudgetSeconds, cfg.SolverTimeBudgetSeconds)
	assert.Equal(t, DefaultSolverWorkers, cfg.SolverWorkers)
	assert.Equal(t, "ceiling", cfg.FixedQuotaPolicy)
	assert.Equal(t, "ceiling", cfg.IndependentQuotaPolicy)
	assert.Equal(t, []string{"NHMC", "NMHMC"}, cfg.MD2GroupA)
	assert.Equal(t, []string{"NMMC", "NBAMC"}, cfg.MD2GroupB)
	assert.Zero(t, cfg.Year)
	assert.Zero(t, cfg.Month)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
year: 2026
month: 7
solverTimeBudgetSeconds: 60
solverWorkers: 2
fixedQuotaPolicy: "exact"
md2GroupA:
  - "NHMC"
md2GroupB:
  - "NMMC"
databaseURL: "postgres://localhost:5432/medroster"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, 2026, cfg.Year)
	assert.Equal(t, 7, cfg.Month)
	assert.Equal(t, 60, cfg.SolverTimeBudgetSeconds)
	assert.Equal(t, 2, cfg.SolverWorkers)
	assert.Equal(t, "exact", cfg.FixedQuotaPolicy)
	assert.Equal(t, []string{"NHMC"}, cfg.MD2GroupA)
	assert.Equal(t, []string{"NMMC"}, cfg.MD2GroupB)
	assert.Equal(t, "postgres://localhost:5432/medroster", cfg.DatabaseURL)

	// Unset fields still pick up defaults.
	assert.Equal(t, "ceiling", cfg.IndependentQuotaPolicy)
}

func TestLoadFromPath_EmptyConfigGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty_config.yaml")

	err := os.WriteFile(configPath, []byte("{}\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultSolverTimeBudgetSeconds, cfg.SolverTimeBudgetSeconds)
	assert.Equal(t, DefaultSolverWorkers, cfg.SolverWorkers)
	assert.Equal(t, []string{"NHMC", "NMHMC"}, cfg.MD2GroupA)
	assert.Equal(t, []string{"NMMC", "NBAMC"}, cfg.MD2GroupB)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
year: 2026
  invalid indentation
month: 7
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_SemanticErrorSurfaces(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad_groups.yaml")

	badGroups := `
md2GroupA:
  - "NHMC"
md2GroupB:
  - "NHMC"
`

	err := os.WriteFile(configPath, []byte(badGroups), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "appears in both MD2 exclusion groups")
}
