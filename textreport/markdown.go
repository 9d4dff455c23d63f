/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package textreport renders a result set as a markdown document.
package textreport

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"chainguard.dev/robustreport/metrictable"
	"chainguard.dev/robustreport/results"
	"chainguard.dev/robustreport/summary"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Markdown renders the description tree, one table per block and, when sum is
// non-nil, the averages and rankings.
func Markdown(rs *results.ResultSet, tables []*metrictable.Table, sum *summary.Summary) string {
	var report strings.Builder

	report.WriteString("# Robustness Evaluation Report\n\n")

	if d := rs.Description; d != nil && len(d.Children) > 0 {
		report.WriteString("## Description\n\n")
		writeNode(&report, d, 0)
		report.WriteString("\n")
	}

	for _, t := range tables {
		fmt.Fprintf(&report, "## %s\n\n", t.Title)
		report.WriteString(Table(t))
		report.WriteString("\n")
	}

	if sum != nil && len(sum.Blocks) > 0 {
		report.WriteString("## Averages\n\n")
		report.WriteString(averages(sum))
		report.WriteString("\n")

		for _, r := range sum.Rankings {
			fmt.Fprintf(&report, "### Ranking by %s\n\n", r.Metric)
			report.WriteString(ranking(r))
			report.WriteString("\n")
		}
	}

	return report.String()
}

// Table renders a single metric table in markdown.
func Table(t *metrictable.Table) string {
	var buf bytes.Buffer
	table := newMarkdownTable(t.Columns, 1, &buf)
	for _, row := range t.Rows {
		_ = table.Append(row)
	}
	_ = table.Render()
	return buf.String()
}

func averages(sum *summary.Summary) string {
	var buf bytes.Buffer
	table := newMarkdownTable([]string{"Block", "Metric", "Mean", "Min", "Max", "N"}, 2, &buf)
	for _, b := range sum.Blocks {
		for _, m := range b.Metrics {
			_ = table.Append([]string{
				b.Name,
				m.Metric,
				fmt.Sprintf("%.5f", m.Mean),
				fmt.Sprintf("%.5f", m.Min),
				fmt.Sprintf("%.5f", m.Max),
				fmt.Sprintf("%d", m.Count),
			})
		}
	}
	_ = table.Render()
	return buf.String()
}

func ranking(r summary.Ranking) string {
	var buf bytes.Buffer
	table := newMarkdownTable([]string{"#", "Block", "Point", r.Metric}, 3, &buf)
	for i, e := range r.Entries {
		_ = table.Append([]string{fmt.Sprintf("%d", i+1), e.Block, e.AxisKey, fmt.Sprintf("%.5f", e.Value)})
	}
	_ = table.Render()
	return buf.String()
}

// newMarkdownTable creates a markdown table whose columns from index numeric
// onwards are right-aligned. Headers are never auto-formatted so metric names
// survive verbatim.
func newMarkdownTable(headers []string, numeric int, w io.Writer) *tablewriter.Table {
	align := make([]tw.Align, len(headers))
	for i := range align {
		align[i] = tw.AlignLeft
		if i >= numeric {
			align[i] = tw.AlignRight
		}
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft, PerColumn: align},
			},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Right: tw.On, Top: tw.Off, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

func writeNode(b *strings.Builder, n *results.Node, depth int) {
	for _, c := range n.Children {
		indent := strings.Repeat("  ", depth)
		if c.IsLeaf() {
			fmt.Fprintf(b, "%s- **%s**: %s\n", indent, c.Key, c.Leaf.String())
			continue
		}
		fmt.Fprintf(b, "%s- **%s**\n", indent, c.Key)
		writeNode(b, c, depth+1)
	}
}
