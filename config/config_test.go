/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/robustreport/chartrender"
	"chainguard.dev/robustreport/config"
	"chainguard.dev/robustreport/naming"
	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), config.WithLookuper(envconfig.MapLookuper(nil)))
	require.NoError(t, err)

	want := &config.Config{
		Output:        "report",
		Locale:        "en",
		AxisPrecision: 4,
		Tolerance:     1e-9,
		LogLevel:      "info",
		Convention:    naming.Default(),
		Style:         chartrender.DefaultStyle(),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	file := writeFile(t, "robustreport.yaml", `
output: from-yaml
locale: ru
axis_precision: 2
convention:
  system_suffixes: [acc, asr]
  baseline_prefixes: [clean_]
problem_types:
  classification: CIFAR-10
chart_style:
  width: 640
`)
	env := envconfig.MapLookuper(map[string]string{
		"ROBUSTREPORT_OUTPUT": "from-env",
		"ROBUSTREPORT_XLSX":   "true",
	})

	cfg, err := config.Load(context.Background(), config.WithFile(file), config.WithLookuper(env))
	require.NoError(t, err)

	if cfg.Output != "from-env" {
		t.Errorf("Output = %q, env should win over the file", cfg.Output)
	}
	if cfg.Locale != "ru" || cfg.AxisPrecision != 2 {
		t.Errorf("file values lost: locale=%q precision=%d", cfg.Locale, cfg.AxisPrecision)
	}
	if !cfg.XLSX {
		t.Error("XLSX should be enabled from the environment")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want the default", cfg.LogLevel)
	}
	if diff := cmp.Diff(naming.Convention{SystemSuffixes: []string{"acc", "asr"}, BaselinePrefixes: []string{"clean_"}}, cfg.Convention); diff != "" {
		t.Errorf("convention mismatch (-want +got):\n%s", diff)
	}
	if cfg.ProblemTypes["classification"] != "CIFAR-10" {
		t.Errorf("problem types = %v", cfg.ProblemTypes)
	}
	if cfg.Style.Width != 640 || cfg.Style.Height != chartrender.DefaultStyle().Height {
		t.Errorf("style should merge over defaults, got %+v", cfg.Style)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	file := writeFile(t, "c.yaml", "locale: ru\n")
	env := envconfig.MapLookuper(map[string]string{"ROBUSTREPORT_CONFIG": file})

	cfg, err := config.Load(context.Background(), config.WithLookuper(env))
	require.NoError(t, err)
	if cfg.Locale != "ru" {
		t.Errorf("Locale = %q, want ru", cfg.Locale)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dotenv := writeFile(t, ".env", "ROBUSTREPORT_METRICS_FILE=/tmp/run.prom\n")
	t.Setenv("ROBUSTREPORT_METRICS_FILE", "")
	os.Unsetenv("ROBUSTREPORT_METRICS_FILE")

	cfg, err := config.Load(context.Background(), config.WithDotEnv(dotenv, filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)
	if cfg.MetricsFile != "/tmp/run.prom" {
		t.Errorf("MetricsFile = %q, want the .env value", cfg.MetricsFile)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
	}{{
		name: "missing file",
		opts: []config.Option{config.WithFile(filepath.Join(t.TempDir(), "nope.yaml"))},
	}, {
		name: "bad yaml",
		opts: []config.Option{config.WithFile(writeFile(t, "bad.yaml", "locale: [\n"))},
	}, {
		name: "bad level",
		opts: []config.Option{config.WithLookuper(envconfig.MapLookuper(map[string]string{"ROBUSTREPORT_LOG_LEVEL": "loud"}))},
	}, {
		name: "negative tolerance",
		opts: []config.Option{config.WithLookuper(envconfig.MapLookuper(map[string]string{"ROBUSTREPORT_BASELINE_TOLERANCE": "-1"}))},
	}, {
		name: "bad color",
		opts: []config.Option{config.WithFile(writeFile(t, "style.yaml", "chart_style:\n  baseline_color: green\n"))},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]config.Option{config.WithLookuper(envconfig.MapLookuper(nil))}, tt.opts...)
			if _, err := config.Load(context.Background(), opts...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug"}
	l, err := cfg.Level()
	require.NoError(t, err)
	if l != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", l)
	}
}
