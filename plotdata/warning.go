/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package plotdata

import "fmt"

// InconsistentBaselineWarning reports a baseline companion whose values differ
// across the axis. Only the first value is used as the reference, so the chart
// hides the variation; the table still shows every raw value.
type InconsistentBaselineWarning struct {
	Block    string
	Metric   string
	Baseline string
	Values   []float64
	Used     float64
}

func (w *InconsistentBaselineWarning) Error() string {
	return fmt.Sprintf("block %q: baseline %q of %q varies across the axis %v; using first value %g",
		w.Block, w.Baseline, w.Metric, w.Values, w.Used)
}
