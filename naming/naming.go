/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package naming encodes the metric naming convention of result sets: which metrics
// are standard ("system") metrics and which metric is the baseline counterpart of
// another.
package naming

import "strings"

// Convention describes how metric names are classified.
//
// A name is a system metric when its lowercase form ends with one of
// SystemSuffixes. A name whose lowercase form starts with one of BaselinePrefixes
// is the baseline counterpart of the metric named by the remainder.
type Convention struct {
	SystemSuffixes   []string `yaml:"system_suffixes"`
	BaselinePrefixes []string `yaml:"baseline_prefixes"`
}

// Default returns the convention used when no configuration overrides it.
func Default() Convention {
	return Convention{
		SystemSuffixes:   []string{"acc", "accuracy", "asr", "f1", "precision", "recall", "auc", "loss"},
		BaselinePrefixes: []string{"baseline_", "clean_"},
	}
}

// IsSystem reports whether name is a system metric.
func (c Convention) IsSystem(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range c.SystemSuffixes {
		if s != "" && strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// BaselineOf returns the lowercase primary name that name is a baseline for.
func (c Convention) BaselineOf(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, p := range c.BaselinePrefixes {
		p = strings.ToLower(p)
		if p != "" && len(lower) > len(p) && strings.HasPrefix(lower, p) {
			return lower[len(p):], true
		}
	}
	return "", false
}

// Partition splits names into system and user metrics, keeping relative order.
func (c Convention) Partition(names []string) (system, user []string) {
	for _, n := range names {
		if c.IsSystem(n) {
			system = append(system, n)
		} else {
			user = append(user, n)
		}
	}
	return system, user
}
