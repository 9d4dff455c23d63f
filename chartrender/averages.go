/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package chartrender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"chainguard.dev/robustreport/summary"
	"github.com/chainguard-dev/clog"
	"github.com/wcharczuk/go-chart/v2"
)

// AveragesPrefix names the files written by RenderAverages.
const AveragesPrefix = "averages"

// AverageBar is the mean of one metric within one block.
type AverageBar struct {
	Block string
	Mean  float64
}

// Averages collects, for every ranked metric of sum, the block means in block
// order. Blocks without a numeric value for the metric are left out.
func Averages(sum *summary.Summary) map[string][]AverageBar {
	out := make(map[string][]AverageBar)
	if sum == nil {
		return out
	}
	ranked := make(map[string]bool, len(sum.Rankings))
	for _, r := range sum.Rankings {
		ranked[r.Metric] = true
	}
	for _, b := range sum.Blocks {
		for _, st := range b.Metrics {
			if ranked[st.Metric] && st.Count > 0 && isFinite(st.Mean) {
				out[st.Metric] = append(out[st.Metric], AverageBar{Block: b.Name, Mean: st.Mean})
			}
		}
	}
	return out
}

// RenderBars writes a bar chart of one metric's block means as PNG to w.
func (r *Renderer) RenderBars(metric string, bars []AverageBar, w io.Writer) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	lo, hi := 0.0, 0.0
	values := make([]chart.Value, 0, len(bars))
	for _, b := range bars {
		lo, hi = math.Min(lo, b.Mean), math.Max(hi, b.Mean)
		values = append(values, chart.Value{
			Label: b.Block,
			Value: b.Mean,
			Style: chart.Style{
				FillColor:   color(r.style.TreatmentColor),
				StrokeColor: color(r.style.TreatmentColor),
				StrokeWidth: 1,
			},
		})
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("Average %s", metric),
		TitleStyle: chart.Style{FontSize: r.style.TitleFontSize},
		Width:      r.style.Width,
		Height:     r.style.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   r.style.Width / (3*len(bars) + 1),
		BarSpacing: r.style.Width / (3*len(bars) + 1),
		XAxis:      chart.Style{FontSize: r.style.AxisFontSize},
		YAxis: chart.YAxis{
			Name:      metric,
			NameStyle: chart.Style{FontSize: r.style.AxisFontSize},
			Style:     chart.Style{FontSize: r.style.AxisFontSize},
			Range:     padRange(lo, hi),
		},
		Bars: values,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering average %s: %w", metric, err)
	}
	return nil
}

// RenderAverages writes one bar chart per ranked metric of sum into dir as
// averages_<metric>.png, in ranking order.
func (r *Renderer) RenderAverages(ctx context.Context, dir string, sum *summary.Summary) ([]Image, error) {
	if sum == nil {
		return nil, nil
	}
	bars := Averages(sum)
	used := make(map[string]int)

	var images []Image
	for _, rk := range sum.Rankings {
		name := fmt.Sprintf("%s_%s", AveragesPrefix, Slug(rk.Metric))
		if n := used[name]; n > 0 {
			used[name]++
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			used[name] = 1
		}
		name += ".png"

		var buf bytes.Buffer
		if err := r.RenderBars(rk.Metric, bars[rk.Metric], &buf); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("writing chart %s: %w", name, err)
		}
		images = append(images, Image{Metric: rk.Metric, Path: name})
	}
	clog.FromContext(ctx).Debugf("Rendered %d average charts", len(images))
	return images, nil
}
