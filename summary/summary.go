/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package summary aggregates metric values across the axis points of each
// experiment block and ranks system metrics across blocks.
package summary

import (
	"sort"

	"chainguard.dev/robustreport/metrictable"
	"chainguard.dev/robustreport/naming"
	"chainguard.dev/robustreport/results"
	"github.com/montanaflynn/stats"
)

// MetricStat holds the aggregate of one metric within a block. Only numeric
// values are counted.
type MetricStat struct {
	Metric string
	Mean   float64
	Min    float64
	Max    float64
	Count  int
}

// BlockSummary holds the per-metric aggregates of one block.
type BlockSummary struct {
	Name    string
	Metrics []MetricStat
}

// RankEntry is one ranked (block, axis point) value.
type RankEntry struct {
	Block   string
	AxisKey string
	Value   float64
}

// Ranking orders every numeric value of a system metric, highest first.
type Ranking struct {
	Metric  string
	Entries []RankEntry
}

// Summary is the aggregate view of a result set.
type Summary struct {
	Blocks   []BlockSummary
	Rankings []Ranking
}

// Summarize computes block aggregates and system metric rankings.
func Summarize(rs *results.ResultSet, conv naming.Convention) *Summary {
	s := &Summary{}
	rankings := make(map[string]*Ranking)
	var order []string

	for _, block := range rs.Experiments {
		names := metrictable.OrderColumns(conv, block.MetricNames())
		pairing := naming.NewPairing(conv, names)

		bs := BlockSummary{Name: block.Title()}
		for _, name := range names {
			var data stats.Float64Data
			for _, e := range block.Entries {
				v, ok := e.Row.Get(name)
				if !ok {
					continue
				}
				if f, ok := v.Number(); ok {
					data = append(data, f)
				}
			}
			if len(data) == 0 {
				continue
			}
			// The inputs are non-empty, so these cannot fail.
			mean, _ := stats.Mean(data)
			lo, _ := stats.Min(data)
			hi, _ := stats.Max(data)
			bs.Metrics = append(bs.Metrics, MetricStat{Metric: name, Mean: mean, Min: lo, Max: hi, Count: len(data)})

			if !conv.IsSystem(name) || pairing.IsCompanion(name) {
				continue
			}
			r, ok := rankings[name]
			if !ok {
				r = &Ranking{Metric: name}
				rankings[name] = r
				order = append(order, name)
			}
			for _, e := range block.Entries {
				v, _ := e.Row.Get(name)
				if f, ok := v.Number(); ok {
					r.Entries = append(r.Entries, RankEntry{Block: bs.Name, AxisKey: e.Key, Value: f})
				}
			}
		}
		s.Blocks = append(s.Blocks, bs)
	}

	for _, name := range order {
		r := rankings[name]
		sort.SliceStable(r.Entries, func(i, j int) bool {
			return r.Entries[i].Value > r.Entries[j].Value
		})
		s.Rankings = append(s.Rankings, *r)
	}
	return s
}

// Stat returns the aggregate of metric in the named block.
func (s *Summary) Stat(block, metric string) (MetricStat, bool) {
	for _, b := range s.Blocks {
		if b.Name != block {
			continue
		}
		for _, m := range b.Metrics {
			if m.Metric == metric {
				return m, true
			}
		}
	}
	return MetricStat{}, false
}
