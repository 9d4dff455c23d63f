/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package naming

import "strings"

// Pairing is the primary/companion table of one block's metric names.
// It is built once and answers lookups without rescanning the names.
type Pairing struct {
	companion map[string]string
	primary   map[string]string
}

// NewPairing associates every name with its baseline companion, if any.
// When several names map to the same primary, the first one wins.
func NewPairing(c Convention, names []string) *Pairing {
	p := &Pairing{
		companion: make(map[string]string),
		primary:   make(map[string]string),
	}

	byLower := make(map[string]string, len(names))
	for _, n := range names {
		lower := strings.ToLower(n)
		if _, ok := byLower[lower]; !ok {
			byLower[lower] = n
		}
	}

	for _, n := range names {
		target, ok := c.BaselineOf(n)
		if !ok {
			continue
		}
		primary, ok := byLower[target]
		if !ok || primary == n {
			continue
		}
		if _, taken := p.companion[primary]; taken {
			continue
		}
		p.companion[primary] = n
		p.primary[n] = primary
	}
	return p
}

// Companion returns the baseline companion of name.
func (p *Pairing) Companion(name string) (string, bool) {
	c, ok := p.companion[name]
	return c, ok
}

// Primary returns the metric that name is the companion of.
func (p *Pairing) Primary(name string) (string, bool) {
	pr, ok := p.primary[name]
	return pr, ok
}

// IsCompanion reports whether name is the baseline of a metric present in the block.
func (p *Pairing) IsCompanion(name string) bool {
	_, ok := p.primary[name]
	return ok
}
