// Package config defines rota's configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and ROTA_ env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"path/filepath"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// RosterFile is the name list, one "Name - label" per line.
	RosterFile string `koanf:"roster_file"`

	// OutputDir holds the per-category schedule folders.
	OutputDir string `koanf:"output_dir"`

	// HistoryFile stores last period's participants. Relative paths are
	// resolved against OutputDir.
	HistoryFile string `koanf:"history_file"`

	// RetentionDays is how old a schedule must be before cleanup removes it.
	RetentionDays int `koanf:"retention_days"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// StartDate overrides the first period's Monday (YYYY-MM-DD).
	StartDate string `koanf:"start_date"`

	// CaseInsensitiveNames treats names differing only by case as duplicates.
	CaseInsensitiveNames bool `koanf:"case_insensitive_names"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels added to every metric, for example
	// the school a rota belongs to.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// Trials and TrialWorkers configure the fairness simulation.
	Trials       int `koanf:"trials"`
	TrialWorkers int `koanf:"trial_workers"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		RosterFile:       "names.txt",
		OutputDir:        "Schedules",
		HistoryFile:      "schedule_history.txt",
		RetentionDays:    90,
		MetricsNamespace: "rota",
		Trials:           1000,
		TrialWorkers:     runtime.NumCPU(),
	}
}

// HistoryPath returns the history file location, resolved against OutputDir
// when relative.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(c.OutputDir, c.HistoryFile)
}
