/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config resolves report settings from defaults, a YAML file and
// ROBUSTREPORT_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"chainguard.dev/robustreport/chartrender"
	"chainguard.dev/robustreport/naming"
	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ROBUSTREPORT_"

// Config is the resolved configuration of a run. Environment variables
// override values from the YAML file, which override the defaults.
type Config struct {
	Output        string  `env:"OUTPUT,overwrite,default=report" yaml:"output"`
	Locale        string  `env:"LOCALE,overwrite,default=en" yaml:"locale"`
	AxisPrecision int     `env:"AXIS_PRECISION,overwrite,default=4" yaml:"axis_precision"`
	Tolerance     float64 `env:"BASELINE_TOLERANCE,overwrite,default=1e-9" yaml:"baseline_tolerance"`
	XLSX          bool    `env:"XLSX,overwrite" yaml:"xlsx"`
	MetricsFile   string  `env:"METRICS_FILE,overwrite" yaml:"metrics_file"`
	PublishURL    string  `env:"PUBLISH_URL,overwrite" yaml:"publish_url"`
	LogLevel      string  `env:"LOG_LEVEL,overwrite,default=info" yaml:"log_level"`

	Convention   naming.Convention `yaml:"convention"`
	ProblemTypes map[string]string `yaml:"problem_types"`
	Style        chartrender.Style `yaml:"chart_style"`
}

type options struct {
	file     string
	dotenv   []string
	lookuper envconfig.Lookuper
}

// Option configures Load.
type Option func(*options)

// WithFile reads the YAML configuration at path. A missing file is an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithDotEnv loads the given .env files into the process environment when
// they exist. Variables already set are kept.
func WithDotEnv(paths ...string) Option {
	return func(o *options) {
		o.dotenv = append(o.dotenv, paths...)
	}
}

// WithLookuper replaces the process environment, mainly for tests.
func WithLookuper(l envconfig.Lookuper) Option {
	return func(o *options) {
		o.lookuper = l
	}
}

// Load resolves the configuration.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	o := options{lookuper: envconfig.OsLookuper()}
	for _, opt := range opts {
		opt(&o)
	}
	log := clog.FromContext(ctx)

	for _, p := range o.dotenv {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		log.Debugf("Loaded environment from %s", p)
	}

	env := envconfig.PrefixLookuper(EnvPrefix, o.lookuper)
	if o.file == "" {
		if v, ok := env.Lookup("CONFIG"); ok {
			o.file = v
		}
	}

	cfg := &Config{
		Convention: naming.Default(),
		Style:      chartrender.DefaultStyle(),
	}
	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", o.file, err)
		}
		log.Debugf("Loaded configuration from %s", o.file)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: env}); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.AxisPrecision < 0 {
		errs = append(errs, fmt.Errorf("axis precision must not be negative, got %d", c.AxisPrecision))
	}
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("baseline tolerance must not be negative, got %g", c.Tolerance))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Style.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chart style: %w", err))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}
