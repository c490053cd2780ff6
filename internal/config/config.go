package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound means no config file exists in any searched location.
// Callers may treat it as "run with defaults".
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

const (
	// DefaultSolverTimeBudgetSeconds bounds the exact phase before the
	// greedy fallback takes over.
	DefaultSolverTimeBudgetSeconds = 300

	// DefaultSolverWorkers is passed to the solver as a parallelism hint.
	DefaultSolverWorkers = 8
)

// Config represents the application configuration
type Config struct {
	// Year and Month anchor the roster to a real calendar month. Leaving
	// both zero schedules the generic 31-day planning month instead.
	Year  int `yaml:"year,omitempty" validate:"omitempty,min=1970"`
	Month int `yaml:"month,omitempty" validate:"omitempty,min=1,max=12"`

	SolverTimeBudgetSeconds int `yaml:"solverTimeBudgetSeconds,omitempty" validate:"min=0"`
	SolverWorkers           int `yaml:"solverWorkers,omitempty" validate:"min=0"`

	// Quota policies say whether a contract class's total quota is an
	// upper bound or an exact target in the exact phase.
	FixedQuotaPolicy       string `yaml:"fixedQuotaPolicy,omitempty" validate:"omitempty,oneof=ceiling exact"`
	IndependentQuotaPolicy string `yaml:"independentQuotaPolicy,omitempty" validate:"omitempty,oneof=ceiling exact"`

	// MD2 site-exclusion groups. A provider may not hold same-day MD2
	// assignments in both groups.
	MD2GroupA []string `yaml:"md2GroupA,omitempty"`
	MD2GroupB []string `yaml:"md2GroupB,omitempty"`

	// DatabaseURL enables run persistence when set.
	DatabaseURL string `yaml:"databaseURL,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from medroster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, err
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied, for runs
// without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SolverTimeBudgetSeconds == 0 {
		cfg.SolverTimeBudgetSeconds = DefaultSolverTimeBudgetSeconds
	}
	if cfg.SolverWorkers == 0 {
		cfg.SolverWorkers = DefaultSolverWorkers
	}
	if cfg.FixedQuotaPolicy == "" {
		cfg.FixedQuotaPolicy = "ceiling"
	}
	if cfg.IndependentQuotaPolicy == "" {
		cfg.IndependentQuotaPolicy = "ceiling"
	}
	if cfg.MD2GroupA == nil {
		cfg.MD2GroupA = []string{"NHMC", "NMHMC"}
	}
	if cfg.MD2GroupB == nil {
		cfg.MD2GroupB = []string{"NMMC", "NBAMC"}
	}
}

// Validate validates the configuration struct and the cross-field rules
// struct tags cannot express
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if (cfg.Year == 0) != (cfg.Month == 0) {
		return fmt.Errorf("year and month must be set together (or both left unset for the generic month)")
	}

	groupA := make(map[string]bool, len(cfg.MD2GroupA))
	for _, facility := range cfg.MD2GroupA {
		groupA[facility] = true
	}
	for _, facility := range cfg.MD2GroupB {
		if groupA[facility] {
			return fmt.Errorf("facility %s appears in both MD2 exclusion groups", facility)
		}
	}

	return nil
}

// findConfigFile searches for medroster_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "medroster_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", ErrConfigNotFound
}
