/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package plotdata

import (
	"math"
	"sort"
	"strconv"

	"chainguard.dev/robustreport/metrictable"
	"chainguard.dev/robustreport/naming"
	"chainguard.dev/robustreport/results"
)

// DefaultTolerance is the absolute difference under which baseline values are equal.
const DefaultTolerance = 1e-9

// Baseline is the reference series drawn for a metric's baseline companion.
type Baseline struct {
	Metric   string
	Constant float64
	// Points repeats Constant once per axis point on categorical axes and is nil
	// on numeric axes, where the reference spans the x-range as a single line.
	Points []float64
}

// ChartSpec is everything needed to draw one metric against the variable parameter.
type ChartSpec struct {
	Metric string
	XLabel string
	// Numeric is true when every axis key parsed as a finite number.
	Numeric bool
	X       []float64
	// TickLabels holds the raw axis keys in X order.
	TickLabels []string
	// Y holds the metric value per point, NaN where missing or non-numeric.
	Y        []float64
	Baseline *Baseline
}

// Plots is the result of DerivePlots.
type Plots struct {
	Charts   []ChartSpec
	Warnings []*InconsistentBaselineWarning
}

type options struct {
	conv      naming.Convention
	tolerance float64
}

// Option configures DerivePlots.
type Option func(*options)

// WithConvention overrides the metric naming convention.
func WithConvention(c naming.Convention) Option {
	return func(o *options) {
		o.conv = c
	}
}

// WithTolerance sets the absolute tolerance used to compare baseline values.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol >= 0 {
			o.tolerance = tol
		}
	}
}

// axis is the inferred x-axis of a block: order maps plot position to entry index.
type axis struct {
	numeric bool
	x       []float64
	labels  []string
	order   []int
}

func inferAxis(block *results.ExperimentBlock) axis {
	n := len(block.Entries)
	parsed := make([]float64, n)
	numeric := true
	for i, e := range block.Entries {
		f, err := strconv.ParseFloat(e.Key, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			numeric = false
			break
		}
		parsed[i] = f
	}

	a := axis{numeric: numeric, x: make([]float64, n), labels: make([]string, n), order: make([]int, n)}
	for i := range a.order {
		a.order[i] = i
	}
	if numeric {
		sort.SliceStable(a.order, func(i, j int) bool {
			return parsed[a.order[i]] < parsed[a.order[j]]
		})
	}
	for pos, idx := range a.order {
		a.labels[pos] = block.Entries[idx].Key
		if numeric {
			a.x[pos] = parsed[idx]
		} else {
			a.x[pos] = float64(pos)
		}
	}
	return a
}

// DerivePlots produces one chart per base metric of the block. Base metrics are
// the table's metric columns minus baseline companions, which are attached to
// their metric's chart instead. Inconsistent baselines are reported as warnings.
func DerivePlots(block *results.ExperimentBlock, opts ...Option) *Plots {
	o := options{conv: naming.Default(), tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	out := &Plots{}
	names := block.MetricNames()
	if len(names) == 0 {
		return out
	}

	pairing := naming.NewPairing(o.conv, names)
	ax := inferAxis(block)

	for _, metric := range metrictable.OrderColumns(o.conv, names) {
		if pairing.IsCompanion(metric) {
			continue
		}
		spec := ChartSpec{
			Metric:     metric,
			XLabel:     block.VariableParamName,
			Numeric:    ax.numeric,
			X:          append([]float64(nil), ax.x...),
			TickLabels: append([]string(nil), ax.labels...),
			Y:          make([]float64, len(ax.order)),
		}
		for pos, idx := range ax.order {
			spec.Y[pos] = numberOrNaN(block.Entries[idx].Row, metric)
		}

		if companion, ok := pairing.Companion(metric); ok {
			b, warn := baseline(block, metric, companion, o.tolerance)
			if warn != nil {
				out.Warnings = append(out.Warnings, warn)
			}
			if b != nil && !ax.numeric {
				b.Points = make([]float64, len(ax.order))
				for i := range b.Points {
					b.Points[i] = b.Constant
				}
			}
			spec.Baseline = b
		}
		out.Charts = append(out.Charts, spec)
	}
	return out
}

// baseline collapses the companion values to one constant, the first numeric value
// in block order. Values that differ beyond tol produce a warning.
func baseline(block *results.ExperimentBlock, metric, companion string, tol float64) (*Baseline, *InconsistentBaselineWarning) {
	var values []float64
	for _, e := range block.Entries {
		if f := numberOrNaN(e.Row, companion); !math.IsNaN(f) {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	first := values[0]
	b := &Baseline{Metric: companion, Constant: first}
	for _, v := range values[1:] {
		if math.Abs(v-first) > tol {
			return b, &InconsistentBaselineWarning{
				Block:    block.Title(),
				Metric:   metric,
				Baseline: companion,
				Values:   values,
				Used:     first,
			}
		}
	}
	return b, nil
}

func numberOrNaN(row results.MetricRow, name string) float64 {
	v, ok := row.Get(name)
	if !ok {
		return math.NaN()
	}
	f, ok := v.Number()
	if !ok {
		return math.NaN()
	}
	return f
}
