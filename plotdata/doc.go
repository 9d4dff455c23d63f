/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package plotdata derives chart-ready series from an experiment block.

# Axis inference

Every axis key is parsed as a number. When all of them parse, the axis is numeric and
the points are ordered by value regardless of document order. Otherwise the axis is
categorical: points stay in document order at positions 0..N-1 and the raw keys become
tick labels.

# Baselines

A metric X whose block also has a baseline companion (for example "baseline_X") gets a
reference series. The companion's values are expected to be constant across the axis;
the first value is used as the reference. If they differ by more than the tolerance, an
InconsistentBaselineWarning is returned alongside the charts. It is a warning, not an
error: the derivation always completes.

On a numeric axis the reference is a single horizontal line. A categorical axis has no
continuous extent, so the reference is instead a pointwise series that repeats the
constant at each position.
*/
package plotdata
