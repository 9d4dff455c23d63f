/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main is the robustreport command line tool.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chainguard.dev/robustreport/config"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var g globalFlags
	if err := newRoot(&g).ExecuteContext(ctx); err != nil {
		clog.FatalContextf(g.context(ctx), "%v", err)
	}
}

type globalFlags struct {
	configFile string
	logLevel   string

	// logger is set once setup has resolved the configured level.
	logger *clog.Logger
}

// context returns ctx carrying the configured logger, when there is one.
func (g *globalFlags) context(ctx context.Context) context.Context {
	if g.logger == nil {
		return ctx
	}
	return clog.WithLogger(ctx, g.logger)
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	return newRoot(&g)
}

func newRoot(g *globalFlags) *cobra.Command {

	root := &cobra.Command{
		Use:   "robustreport",
		Short: "Render robustness evaluation results as tables, charts and reports",
		Long: `robustreport reads the JSON results of a model robustness evaluation and
renders an HTML report with charts, a markdown report and optional spreadsheet.

Settings are read from ROBUSTREPORT_* environment variables (and a .env file in
the working directory), an optional YAML file given by --config or
ROBUSTREPORT_CONFIG, and command line flags, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newGenerateCmd(g),
		newTableCmd(g),
		newSchemaCmd(),
	)
	return root
}

// setup resolves the configuration and installs the logger on the command context.
func setup(cmd *cobra.Command, g *globalFlags) (context.Context, *config.Config, error) {
	ctx := cmd.Context()

	opts := []config.Option{config.WithDotEnv(".env")}
	if g.configFile != "" {
		opts = append(opts, config.WithFile(g.configFile))
	}
	cfg, err := config.Load(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	g.logger = clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return clog.WithLogger(ctx, g.logger), cfg, nil
}
