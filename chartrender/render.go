/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package chartrender draws chart specifications as PNG images.
package chartrender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"chainguard.dev/robustreport/plotdata"
	"github.com/chainguard-dev/clog"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when a chart has no finite point to draw.
var ErrNoData = errors.New("chart has no numeric data")

// Image is a rendered chart file.
type Image struct {
	Metric string
	// Path is relative to the output directory.
	Path string
}

// Renderer draws charts with a fixed style.
type Renderer struct {
	style Style
}

// NewRenderer returns a renderer using the given style.
func NewRenderer(style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{style: style}, nil
}

// Style returns a copy of the renderer's style.
func (r *Renderer) Style() Style {
	s := r.style
	s.BaselineDash = append([]float64(nil), r.style.BaselineDash...)
	return s
}

// Render writes spec as a PNG image to w.
func (r *Renderer) Render(spec plotdata.ChartSpec, w io.Writer) error {
	ch, err := r.build(spec)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering %s: %w", spec.Metric, err)
	}
	return nil
}

// RenderAll renders every chart into dir as <prefix>_<metric>.png. Charts
// without data are skipped.
func (r *Renderer) RenderAll(ctx context.Context, dir, prefix string, charts []plotdata.ChartSpec) ([]Image, error) {
	log := clog.FromContext(ctx)

	images := make([]Image, 0, len(charts))
	used := make(map[string]int)
	for _, spec := range charts {
		name := fmt.Sprintf("%s_%s", prefix, Slug(spec.Metric))
		if n := used[name]; n > 0 {
			used[name]++
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			used[name] = 1
		}
		name += ".png"

		var buf bytes.Buffer
		if err := r.Render(spec, &buf); err != nil {
			if errors.Is(err, ErrNoData) {
				log.Debugf("Skipping chart %s: no numeric data", spec.Metric)
				continue
			}
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("writing chart %s: %w", name, err)
		}
		images = append(images, Image{Metric: spec.Metric, Path: name})
	}
	return images, nil
}

func (r *Renderer) build(spec plotdata.ChartSpec) (*chart.Chart, error) {
	xs, ys := finite(spec.X, spec.Y)
	if len(xs) == 0 && spec.Baseline == nil {
		return nil, ErrNoData
	}

	xRange := padRange(minMax(spec.X))
	if !spec.Numeric {
		xRange = &chart.ContinuousRange{Min: -0.5, Max: float64(len(spec.X)) - 0.5}
	}

	treatment := chart.ContinuousSeries{
		Name:    spec.Metric,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color(r.style.TreatmentColor),
			StrokeWidth: r.style.StrokeWidth,
			DotColor:    color(r.style.TreatmentColor),
			DotWidth:    r.style.DotWidth,
		},
	}
	var series []chart.Series
	if len(xs) > 0 {
		series = append(series, treatment)
	}
	yValues := append([]float64(nil), ys...)

	if b := spec.Baseline; b != nil {
		baseStyle := chart.Style{
			StrokeColor:     color(r.style.BaselineColor),
			StrokeWidth:     r.style.StrokeWidth,
			StrokeDashArray: append([]float64(nil), r.style.BaselineDash...),
		}
		var bs chart.ContinuousSeries
		if spec.Numeric {
			bs = chart.ContinuousSeries{
				XValues: []float64{xRange.Min, xRange.Max},
				YValues: []float64{b.Constant, b.Constant},
			}
		} else {
			bs = chart.ContinuousSeries{XValues: spec.X, YValues: b.Points}
			baseStyle.DotColor = color(r.style.BaselineColor)
			baseStyle.DotWidth = r.style.DotWidth
		}
		bs.Name = b.Metric
		bs.Style = baseStyle
		series = append(series, bs)
		yValues = append(yValues, b.Constant)
	}

	xAxis := chart.XAxis{
		Name:      spec.XLabel,
		NameStyle: chart.Style{FontSize: r.style.AxisFontSize},
		Style:     chart.Style{FontSize: r.style.AxisFontSize},
		Range:     xRange,
	}
	if !spec.Numeric {
		xAxis.Ticks = categoryTicks(spec.TickLabels)
	}

	ch := &chart.Chart{
		Title:      fmt.Sprintf("%s vs %s", spec.Metric, spec.XLabel),
		TitleStyle: chart.Style{FontSize: r.style.TitleFontSize},
		Width:      r.style.Width,
		Height:     r.style.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:      spec.Metric,
			NameStyle: chart.Style{FontSize: r.style.AxisFontSize},
			Style:     chart.Style{FontSize: r.style.AxisFontSize},
			Range:     padRange(minMax(yValues)),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}

// categoryTicks labels positions 0..n-1 and adds blank ticks half a step
// outside them. go-chart takes the x range from the ticks when they are set,
// so a single category would otherwise collapse the range to zero width.
func categoryTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, label := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}
	return append(ticks, chart.Tick{Value: float64(len(labels)) - 0.5})
}

// finite drops points whose x or y is NaN or infinite.
func finite(xs, ys []float64) ([]float64, []float64) {
	var fx, fy []float64
	for i := range ys {
		if i >= len(xs) || !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		fx = append(fx, xs[i])
		fy = append(fy, ys[i])
	}
	return fx, fy
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func minMax(vs []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if !isFinite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}

// padRange widens a degenerate range so the chart library accepts it.
func padRange(lo, hi float64) *chart.ContinuousRange {
	if hi > lo {
		return &chart.ContinuousRange{Min: lo, Max: hi}
	}
	pad := math.Abs(lo) * 0.1
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// Slug turns a metric name into a file-name friendly token.
func Slug(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteRune('-')
			lastDash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "metric"
	}
	return out
}
