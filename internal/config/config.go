/**
 * CONTEXT:   Run configuration for the schedule engine, layered over
 *            defaults, an optional YAML/JSON file, and environment
 *            variables
 * INPUT:     Configuration file path (YAML or JSON), environment
 *            variables, and default settings
 * OUTPUT:    Validated Config ready for the CLI to hand to every component
 * BUSINESS:  Centralizes the hours-per-workday, float threshold, safety
 *            ceiling, and watch list every engine invocation needs,
 *            instead of threading them through as individual flags
 * CHANGE:    Replaced the daemon HTTP/database/work-tracking configuration
 *            with the engine run configuration; same file role, new domain
 * RISK:      Low - Configuration management with validation and defaults
 */

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

/**
 * CONTEXT:   Top-level run configuration structure
 * INPUT:     Configuration values from files, environment, and defaults
 * OUTPUT:    Complete configuration ready for the CPM engine and CLI
 * BUSINESS:  One struct threaded through reproject/cpm/window/graph/serve
 *            so every subcommand agrees on calendar and float semantics
 * CHANGE:    Initial configuration structure for the scheduling domain
 * RISK:      Low - Configuration data structure with validation methods
 */
type Config struct {
	HoursPerWorkday           float64  `json:"hours_per_workday" yaml:"hours_per_workday"`
	CriticalFloatThresholdDays int     `json:"critical_float_threshold_days" yaml:"critical_float_threshold_days"`
	WorkingDaySafetyCeiling   int      `json:"working_day_safety_ceiling" yaml:"working_day_safety_ceiling"`
	MonitoredTasks            []string `json:"monitored_tasks" yaml:"monitored_tasks"`
	LogLevel                  string   `json:"log_level" yaml:"log_level"`
	LogFormat                 string   `json:"log_format" yaml:"log_format"`
	AllowCycleRepair          bool     `json:"allow_cycle_repair" yaml:"allow_cycle_repair"`
	GraphStorePath            string   `json:"graph_store_path" yaml:"graph_store_path"`
}

/**
 * CONTEXT:   Default configuration values for the schedule engine
 * INPUT:     No parameters, provides sensible defaults for every field
 * OUTPUT:    Config instance ready for zero-configuration CLI invocations
 * BUSINESS:  Matches cpm.DefaultConfig()'s values so the CLI behaves like
 *            the engine's defaults when no file is given; a bare Config{}
 *            does not pass Validate (hours_per_workday is 0)
 * CHANGE:    Initial default configuration
 * RISK:      Low - Default values only
 */
func Default() *Config {
	return &Config{
		HoursPerWorkday:            8,
		CriticalFloatThresholdDays: 0,
		WorkingDaySafetyCeiling:    4000,
		MonitoredTasks:             nil,
		LogLevel:                   "info",
		LogFormat:                  "text",
		AllowCycleRepair:           false,
		GraphStorePath:             "",
	}
}

/**
 * CONTEXT:   Load configuration from file with fallback to defaults
 * INPUT:     Configuration file path (.yaml/.yml or .json by extension)
 * OUTPUT:    Loaded and validated configuration, or an error
 * BUSINESS:  Allow file-based configuration while keeping defaults when no
 *            path is given, mirroring the teacher's LoadDaemonConfig
 * CHANGE:    Initial configuration loading with YAML and JSON support
 * RISK:      Medium - File I/O and parsing with validation
 */
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported extension for %s, want .yaml/.yml/.json", configPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

/**
 * CONTEXT:   Apply XERSCHED_-prefixed environment variable overrides
 * INPUT:     A base configuration (typically from Load) and the process
 *            environment
 * OUTPUT:    The same configuration with any present overrides applied
 * BUSINESS:  Supports container and CI invocations where a config file is
 *            inconvenient but a couple of values need to change
 * CHANGE:    Initial environment variable overlay
 * RISK:      Low - Best-effort parsing; malformed values are ignored
 */
func (c *Config) ApplyEnvironment() {
	if v := os.Getenv("XERSCHED_HOURS_PER_WORKDAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.HoursPerWorkday = f
		}
	}
	if v := os.Getenv("XERSCHED_CRITICAL_FLOAT_THRESHOLD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CriticalFloatThresholdDays = n
		}
	}
	if v := os.Getenv("XERSCHED_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("XERSCHED_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("XERSCHED_GRAPH_STORE_PATH"); v != "" {
		c.GraphStorePath = v
	}
}

/**
 * CONTEXT:   Validate a loaded configuration before it reaches the engine
 * INPUT:     A populated Config
 * OUTPUT:    nil, or the first validation failure encountered
 * BUSINESS:  Catches operator typos (zero hours-per-workday, negative
 *            ceiling) before they produce confusing downstream errors
 * CHANGE:    Initial validation rules for the scheduling domain
 * RISK:      Low - Pure validation, no side effects
 */
func (c *Config) Validate() error {
	if c.HoursPerWorkday <= 0 {
		return fmt.Errorf("hours_per_workday must be positive, got %v", c.HoursPerWorkday)
	}
	if c.WorkingDaySafetyCeiling <= 0 {
		return fmt.Errorf("working_day_safety_ceiling must be positive, got %d", c.WorkingDaySafetyCeiling)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
