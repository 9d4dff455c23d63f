/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"chainguard.dev/robustreport/metrictable"
	"chainguard.dev/robustreport/report"
	"chainguard.dev/robustreport/results"
	"chainguard.dev/robustreport/schema"
	"chainguard.dev/robustreport/summary"
	"chainguard.dev/robustreport/textreport"
	"github.com/spf13/cobra"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var (
		output      string
		locale      string
		xlsx        bool
		metricsFile string
		publishURL  string
	)

	cmd := &cobra.Command{
		Use:   "generate <results.json>",
		Short: "Write the HTML report, charts and markdown report",
		Long: `Generate renders every experiment block of the results file into the output
directory: index.html, report.md, one PNG chart per metric and, with --xlsx,
results.xlsx.

Example: robustreport generate results.json -o out --locale ru --xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd, g)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("locale") {
				cfg.Locale = locale
			}
			if flags.Changed("xlsx") {
				cfg.XLSX = xlsx
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if flags.Changed("publish") {
				cfg.PublishURL = publishURL
			}

			res, err := report.NewGenerator().Run(ctx, report.OptionsFromConfig(cfg, args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "report", "Output directory")
	cmd.Flags().StringVar(&locale, "locale", "en", "Report language: en or ru")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "Also write results.xlsx")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in the node exporter textfile format")
	cmd.Flags().StringVar(&publishURL, "publish", "", "Upload the output directory to gs://bucket/prefix")

	return cmd
}

func newTableCmd(g *globalFlags) *cobra.Command {
	var withSummary bool

	cmd := &cobra.Command{
		Use:   "table <results.json>",
		Short: "Print the metric tables as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd, g)
			if err != nil {
				return err
			}

			rs, err := results.Load(ctx, args[0])
			if err != nil {
				return err
			}
			tables := make([]*metrictable.Table, 0, len(rs.Experiments))
			for _, b := range rs.Experiments {
				tables = append(tables, metrictable.BuildMetricTable(b,
					metrictable.WithConvention(cfg.Convention),
					metrictable.WithAxisPrecision(cfg.AxisPrecision)))
			}

			var sum *summary.Summary
			if withSummary {
				sum = summary.Summarize(rs, cfg.Convention)
			}
			fmt.Fprint(cmd.OutOrStdout(), textreport.Markdown(rs, tables, sum))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSummary, "summary", false, "Append averages and rankings")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the results document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := schema.InputJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
