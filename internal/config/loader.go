package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/rota/internal/domain/types"
	"github.com/okian/rota/pkg/metrics"
)

// Environment variables read by Load.
const (
	envPrefix     = "ROTA_"
	envConfigFile = "ROTA_CONFIG"
)

// metricName matches Prometheus metric and label names.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ROTA_CONFIG is set
//  3. env (prefix ROTA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ROTA_OUTPUT_DIR -> output_dir; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// ROTA_CONFIG names the file; it is not a setting.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RosterFile) == "" {
		return fmt.Errorf("%w: roster_file must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.HistoryFile) == "" {
		return fmt.Errorf("%w: history_file must not be empty", ErrInvalidConfig)
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("%w: retention_days must be positive, got %d", ErrInvalidConfig, c.RetentionDays)
	}
	if c.Trials < 0 || c.TrialWorkers < 0 {
		return fmt.Errorf("%w: trials and trial_workers must not be negative", ErrInvalidConfig)
	}
	if !metricName.MatchString(c.MetricsNamespace) {
		return fmt.Errorf("%w: metrics_namespace %q is not a valid metric name", ErrInvalidConfig, c.MetricsNamespace)
	}
	for name := range c.MetricsLabels {
		if !metricName.MatchString(name) || strings.HasPrefix(name, "__") || metrics.IsReservedLabel(name) {
			return fmt.Errorf("%w: metrics_labels key %q is not a valid label name", ErrInvalidConfig, name)
		}
	}
	if c.StartDate != "" {
		d, err := types.ParseDate(c.StartDate)
		if err != nil {
			return fmt.Errorf("%w: start_date %q: %w", ErrInvalidConfig, c.StartDate, err)
		}
		if d.Weekday() != time.Monday {
			return fmt.Errorf("%w: start_date %q is a %s, not a Monday", ErrInvalidConfig, c.StartDate, d.Weekday())
		}
	}
	return nil
}
