// internal/config/config.go
//
// This package handles configuration and the .taktplan directory structure.
// Every project that uses taktplan gets a .taktplan/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TaktplanDir is the name of the directory we create in each project
const TaktplanDir = ".taktplan"

const defaultProjectConfigYAML = `# taktplan project configuration
version: 1

# Costing defaults applied to roles the plan does not declare.
costing:
  daily_hours: 3.87
  holders: 3
  hourly_cost: 105

# Entries costing more than this are flagged in the report.
cost_threshold: 2000
`

// CostingConfig models the costing block of .taktplan/config.yaml.
type CostingConfig struct {
	DailyHours float64 `yaml:"daily_hours"`
	Holders    int     `yaml:"holders"`
	HourlyCost float64 `yaml:"hourly_cost"`
}

// ProjectConfig models .taktplan/config.yaml.
type ProjectConfig struct {
	Version       int           `yaml:"version"`
	Costing       CostingConfig `yaml:"costing"`
	CostThreshold float64       `yaml:"cost_threshold"`
}

// Config holds the runtime configuration for taktplan.
type Config struct {
	// ProjectDir is the directory where the user ran `taktplan` from
	ProjectDir string

	// TaktplanProjectDir is ProjectDir/.taktplan
	TaktplanProjectDir string

	Project ProjectConfig
}

// InitTaktplanDir creates the .taktplan directory structure in the given
// project directory.
//
// Structure created:
// .taktplan/
// ├── logs/         <- Run journal
// └── config.yaml   <- Costing defaults and report thresholds
func InitTaktplanDir(projectDir string) error {
	taktplanDir := filepath.Join(projectDir, TaktplanDir)

	if err := os.MkdirAll(filepath.Join(taktplanDir, "logs"), 0755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(taktplanDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		TaktplanProjectDir: filepath.Join(projectDir, TaktplanDir),
		Project:            defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.TaktplanProjectDir, "logs")
}

// RunLogPath returns the path to the run journal file.
func (c *Config) RunLogPath() string {
	return filepath.Join(c.LogsDir(), "runs.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.TaktplanProjectDir, "config.yaml")
}

// Costing returns the configured costing defaults.
func (c *Config) Costing() CostingConfig {
	return c.Project.Costing
}

// CostThreshold returns the high-cost report threshold.
func (c *Config) CostThreshold() float64 {
	return c.Project.CostThreshold
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Costing: CostingConfig{
			DailyHours: 3.87,
			Holders:    3,
			HourlyCost: 105,
		},
		CostThreshold: 2000,
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	defaults := defaultProjectConfig()
	if pc.Costing.DailyHours == 0 {
		pc.Costing.DailyHours = defaults.Costing.DailyHours
	}
	if pc.Costing.Holders == 0 {
		pc.Costing.Holders = defaults.Costing.Holders
	}
	if pc.Costing.HourlyCost == 0 {
		pc.Costing.HourlyCost = defaults.Costing.HourlyCost
	}
	if pc.CostThreshold == 0 {
		pc.CostThreshold = defaults.CostThreshold
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Costing.DailyHours <= 0 {
		return fmt.Errorf("costing.daily_hours must be > 0")
	}
	if pc.Costing.Holders <= 0 {
		return fmt.Errorf("costing.holders must be > 0")
	}
	if pc.Costing.HourlyCost <= 0 {
		return fmt.Errorf("costing.hourly_cost must be > 0")
	}
	if pc.CostThreshold < 0 {
		return fmt.Errorf("cost_threshold must be >= 0")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
