/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrictable turns an experiment block into an ordered, display-ready table.
package metrictable

import (
	"chainguard.dev/robustreport/naming"
	"chainguard.dev/robustreport/results"
)

// DefaultAxisPrecision is the number of decimals used for numeric axis values.
const DefaultAxisPrecision = 4

// ColumnKind tells renderers what a column holds.
type ColumnKind int

const (
	// ColumnAxis is the variable parameter column.
	ColumnAxis ColumnKind = iota
	// ColumnSystem is a standard metric.
	ColumnSystem
	// ColumnBaseline is the baseline companion of the preceding system metric.
	ColumnBaseline
	// ColumnUser is an experiment-specific metric.
	ColumnUser
)

// Table is a row-major table: Columns is the header, each row has one cell per column.
type Table struct {
	Title   string
	Columns []string
	Kinds   []ColumnKind
	Rows    [][]string
}

type options struct {
	conv      naming.Convention
	precision int
}

// Option configures BuildMetricTable.
type Option func(*options)

// WithConvention overrides the metric naming convention.
func WithConvention(c naming.Convention) Option {
	return func(o *options) {
		o.conv = c
	}
}

// WithAxisPrecision sets the decimals used for numeric axis values.
func WithAxisPrecision(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.precision = n
		}
	}
}

// BuildMetricTable lays out one block as a table. The first column is the variable
// parameter; metric columns follow OrderColumns. An empty block yields a
// header-only table with no metric columns.
func BuildMetricTable(block *results.ExperimentBlock, opts ...Option) *Table {
	o := options{conv: naming.Default(), precision: DefaultAxisPrecision}
	for _, opt := range opts {
		opt(&o)
	}

	names := block.MetricNames()
	metrics := OrderColumns(o.conv, names)
	pairing := naming.NewPairing(o.conv, names)

	t := &Table{
		Title:   block.Title(),
		Columns: append([]string{block.VariableParamName}, metrics...),
		Kinds:   make([]ColumnKind, 0, len(metrics)+1),
	}
	t.Kinds = append(t.Kinds, ColumnAxis)
	for _, m := range metrics {
		switch {
		case !o.conv.IsSystem(m):
			t.Kinds = append(t.Kinds, ColumnUser)
		case pairing.IsCompanion(m):
			t.Kinds = append(t.Kinds, ColumnBaseline)
		default:
			t.Kinds = append(t.Kinds, ColumnSystem)
		}
	}

	for _, entry := range block.Entries {
		row := make([]string, 0, len(t.Columns))
		row = append(row, FormatAxisKey(entry.Key, o.precision))
		for _, m := range metrics {
			v, ok := entry.Row.Get(m)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, FormatValue(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// OrderColumns orders metric names so that every baseline companion directly
// follows its metric and user metrics come last.
func OrderColumns(conv naming.Convention, names []string) []string {
	pairing := naming.NewPairing(conv, names)
	system, user := conv.Partition(names)

	out := make([]string, 0, len(names))
	emitted := make(map[string]bool, len(names))
	emit := func(name string) {
		out = append(out, name)
		emitted[name] = true
		if c, ok := pairing.Companion(name); ok && !emitted[c] {
			out = append(out, c)
			emitted[c] = true
		}
	}

	for _, name := range system {
		if emitted[name] {
			continue
		}
		if _, isBaseline := conv.BaselineOf(name); isBaseline {
			continue
		}
		emit(name)
	}
	// Baselines whose metric is absent.
	for _, name := range system {
		if !emitted[name] {
			emit(name)
		}
	}

	return append(out, user...)
}
