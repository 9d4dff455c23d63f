/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package plotdata_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"chainguard.dev/robustreport/plotdata"
	"chainguard.dev/robustreport/results"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func mustBlock(t *testing.T, doc string) *results.ExperimentBlock {
	t.Helper()
	rs, err := results.Parse([]byte(doc))
	require.NoError(t, err)
	require.NotEmpty(t, rs.Experiments)
	return rs.Experiments[0]
}

func TestDerivePlotsExample(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "epsilon", "results": {
		"0.0": {"acc": 0.9, "baseline_acc": 0.9},
		"0.3": {"acc": 0.4, "baseline_acc": 0.9}
	}}]}`)

	got := plotdata.DerivePlots(block)

	want := &plotdata.Plots{
		Charts: []plotdata.ChartSpec{{
			Metric:     "acc",
			XLabel:     "epsilon",
			Numeric:    true,
			X:          []float64{0.0, 0.3},
			TickLabels: []string{"0.0", "0.3"},
			Y:          []float64{0.9, 0.4},
			Baseline:   &plotdata.Baseline{Metric: "baseline_acc", Constant: 0.9},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DerivePlots mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivePlotsInconsistentBaseline(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"name": "fgsm", "variable_param_name": "epsilon", "results": {
		"0.0": {"acc": 0.9, "baseline_acc": 0.9},
		"0.3": {"acc": 0.4, "baseline_acc": 0.8}
	}}]}`)

	got := plotdata.DerivePlots(block)
	require.Len(t, got.Charts, 1)
	require.Len(t, got.Warnings, 1)

	if b := got.Charts[0].Baseline; b == nil || b.Constant != 0.9 {
		t.Errorf("got baseline %+v, want constant 0.9", b)
	}
	w := got.Warnings[0]
	if w.Block != "fgsm" || w.Metric != "acc" || w.Baseline != "baseline_acc" || w.Used != 0.9 {
		t.Errorf("unexpected warning %+v", w)
	}
	if diff := cmp.Diff([]float64{0.9, 0.8}, w.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	var target *plotdata.InconsistentBaselineWarning
	if !errors.As(error(w), &target) {
		t.Error("warning should be usable as an error")
	}
	if !strings.Contains(w.Error(), "baseline_acc") {
		t.Errorf("message %q should name the baseline", w.Error())
	}
}

func TestDerivePlotsWithinTolerance(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "epsilon", "results": {
		"0.0": {"acc": 0.9, "baseline_acc": 0.9},
		"0.3": {"acc": 0.4, "baseline_acc": 0.9000000000001}
	}}]}`)

	got := plotdata.DerivePlots(block)
	if len(got.Warnings) != 0 {
		t.Errorf("got %d warnings, want 0", len(got.Warnings))
	}

	loose := plotdata.DerivePlots(mustBlock(t, `{"experiments": [{"variable_param_name": "epsilon", "results": {
		"0.0": {"acc": 0.9, "baseline_acc": 0.9},
		"0.3": {"acc": 0.4, "baseline_acc": 0.85}
	}}]}`), plotdata.WithTolerance(0.1))
	if len(loose.Warnings) != 0 {
		t.Errorf("got %d warnings with loose tolerance, want 0", len(loose.Warnings))
	}
}

func TestDerivePlotsNumericAxisSorted(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "eps", "results": {
		"0.5": {"acc": 0.1}, "0.1": {"acc": 0.7}, "0.3": {"acc": 0.4}
	}}]}`)

	got := plotdata.DerivePlots(block)
	require.Len(t, got.Charts, 1)
	c := got.Charts[0]
	if !c.Numeric {
		t.Fatal("expected numeric axis")
	}
	if diff := cmp.Diff([]float64{0.1, 0.3, 0.5}, c.X); diff != "" {
		t.Errorf("x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.7, 0.4, 0.1}, c.Y); diff != "" {
		t.Errorf("y mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0.1", "0.3", "0.5"}, c.TickLabels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivePlotsCategoricalAxis(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "attack", "results": {
		"pgd": {"acc": 0.2, "baseline_acc": 0.95},
		"0.5": {"acc": 0.6, "baseline_acc": 0.95},
		"fgsm": {"acc": 0.3, "baseline_acc": 0.95}
	}}]}`)

	got := plotdata.DerivePlots(block)
	require.Len(t, got.Charts, 1)
	c := got.Charts[0]
	if c.Numeric {
		t.Fatal("expected categorical axis")
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, c.X); diff != "" {
		t.Errorf("x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pgd", "0.5", "fgsm"}, c.TickLabels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.2, 0.6, 0.3}, c.Y); diff != "" {
		t.Errorf("y mismatch (-want +got):\n%s", diff)
	}
	want := &plotdata.Baseline{Metric: "baseline_acc", Constant: 0.95, Points: []float64{0.95, 0.95, 0.95}}
	if diff := cmp.Diff(want, c.Baseline); diff != "" {
		t.Errorf("baseline mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivePlotsInfiniteKeyIsCategorical(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "eps", "results": {
		"inf": {"acc": 0.1}, "0.3": {"acc": 0.4}, "-Infinity": {"acc": 0.9}
	}}]}`)

	got := plotdata.DerivePlots(block)
	require.Len(t, got.Charts, 1)
	c := got.Charts[0]
	if c.Numeric {
		t.Fatal("infinite keys should give a categorical axis")
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, c.X); diff != "" {
		t.Errorf("x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"inf", "0.3", "-Infinity"}, c.TickLabels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivePlotsBaseMetrics(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "eps", "results": {
		"1": {"latency": 3, "baseline_asr": 0.1, "acc": 0.5, "Baseline_ACC": 0.9, "f1": 0.4}
	}}]}`)

	got := plotdata.DerivePlots(block)
	var metrics []string
	for _, c := range got.Charts {
		metrics = append(metrics, c.Metric)
	}
	// baseline_asr has no primary so it is charted on its own.
	if diff := cmp.Diff([]string{"acc", "f1", "baseline_asr", "latency"}, metrics); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if got.Charts[0].Baseline == nil || got.Charts[0].Baseline.Metric != "Baseline_ACC" {
		t.Errorf("acc should pair with Baseline_ACC, got %+v", got.Charts[0].Baseline)
	}
}

func TestDerivePlotsMissingAndTextValues(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "eps", "results": {
		"1": {"acc": 0.5, "baseline_acc": "n/a"},
		"2": {"baseline_acc": "n/a"},
		"3": {"acc": "oops", "baseline_acc": "n/a"}
	}}]}`)

	got := plotdata.DerivePlots(block)
	require.Len(t, got.Charts, 1)
	c := got.Charts[0]
	if diff := cmp.Diff([]float64{0.5, math.NaN(), math.NaN()}, c.Y, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("y mismatch (-want +got):\n%s", diff)
	}
	if c.Baseline != nil {
		t.Errorf("non-numeric baseline should be dropped, got %+v", c.Baseline)
	}
}

func TestDerivePlotsEmptyBlock(t *testing.T) {
	block := mustBlock(t, `{"experiments": [{"variable_param_name": "eps", "results": {}}]}`)
	got := plotdata.DerivePlots(block)
	if len(got.Charts) != 0 || len(got.Warnings) != 0 {
		t.Errorf("got %+v, want empty plots", got)
	}
}
