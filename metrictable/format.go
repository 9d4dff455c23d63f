/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrictable

import (
	"math"
	"strconv"

	"chainguard.dev/robustreport/results"
)

// FormatValue renders a metric cell: floats with 5 decimals, integers as
// written, everything else as its plain text.
func FormatValue(v results.Value) string {
	switch v.Kind {
	case results.KindFloat:
		return strconv.FormatFloat(v.Float, 'f', 5, 64)
	case results.KindInt:
		if v.Raw != "" {
			return v.Raw
		}
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.String()
	}
}

// FormatAxisKey renders an axis value with fixed precision when it parses as
// a finite number. Other keys, including "inf" and "nan", are kept verbatim.
func FormatAxisKey(key string, precision int) string {
	f, err := strconv.ParseFloat(key, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return key
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}
