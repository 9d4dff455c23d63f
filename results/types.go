/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package results

import "strconv"

// Kind classifies a scalar value read from the input document.
type Kind int

const (
	// KindNull is a JSON null.
	KindNull Kind = iota
	// KindFloat is a JSON number written with a fraction or exponent.
	KindFloat
	// KindInt is a JSON number written as a plain integer.
	KindInt
	// KindText is a JSON string.
	KindText
	// KindBool is a JSON boolean.
	KindBool
	// KindRaw is a nested structure kept verbatim.
	KindRaw
)

// Value is a scalar metric or description value.
type Value struct {
	Kind Kind
	// Float holds the value of every number. It is exact for floats and for
	// integers within ±2^53, and the nearest double otherwise.
	Float float64
	// Int holds integers that fit in int64; Raw keeps the others exactly.
	Int  int64
	Text string
	Bool bool
	// Raw is the literal JSON text of the value.
	Raw string
}

// FloatValue returns a KindFloat value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

// IntValue returns a KindInt value.
func IntValue(i int64) Value {
	return Value{Kind: KindInt, Int: i, Float: float64(i), Raw: strconv.FormatInt(i, 10)}
}

// TextValue returns a KindText value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s, Raw: strconv.Quote(s)}
}

// Number reports the numeric value and whether the value is numeric.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindFloat, KindInt:
		return v.Float, true
	default:
		return 0, false
	}
}

// String renders the value as plain text, strings unquoted.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNull:
		return "null"
	default:
		return v.Raw
	}
}

// MetricRow maps metric names to values, preserving the document order of names.
type MetricRow struct {
	Names  []string
	Values map[string]Value
}

// NewMetricRow returns an empty row.
func NewMetricRow() MetricRow {
	return MetricRow{Values: make(map[string]Value)}
}

// Set stores a value, appending the name on first use.
func (r *MetricRow) Set(name string, v Value) {
	if r.Values == nil {
		r.Values = make(map[string]Value)
	}
	if _, ok := r.Values[name]; !ok {
		r.Names = append(r.Names, name)
	}
	r.Values[name] = v
}

// Get returns the value stored under name.
func (r MetricRow) Get(name string) (Value, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// AxisEntry is one observed value of the block's variable parameter.
type AxisEntry struct {
	// Key is the parameter value as written in the document.
	Key string
	Row MetricRow
}

// ExperimentBlock is one independent-variable sweep.
type ExperimentBlock struct {
	Name              string
	VariableParamName string
	Entries           []AxisEntry
}

// MetricNames returns the metric names of the first entry, which define the
// block's column set. An empty block has no metric names.
func (b *ExperimentBlock) MetricNames() []string {
	if b == nil || len(b.Entries) == 0 {
		return nil
	}
	names := make([]string, len(b.Entries[0].Row.Names))
	copy(names, b.Entries[0].Row.Names)
	return names
}

// Keys returns the axis keys in document order.
func (b *ExperimentBlock) Keys() []string {
	keys := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Title returns the block name, falling back to the variable parameter name.
func (b *ExperimentBlock) Title() string {
	if b.Name != "" {
		return b.Name
	}
	return b.VariableParamName
}

// Node is a description tree node: a leaf value or an ordered list of children.
type Node struct {
	Key      string
	Leaf     *Value
	Children []*Node
}

// IsLeaf reports whether the node holds a value.
func (n *Node) IsLeaf() bool {
	return n.Leaf != nil
}

// Child returns the direct child with the given key.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// LeafString returns the text of a direct leaf child, or "" when absent.
func (n *Node) LeafString(key string) string {
	c := n.Child(key)
	if c == nil || c.Leaf == nil {
		return ""
	}
	return c.Leaf.String()
}

// ResultSet is the top-level record of one evaluation run.
type ResultSet struct {
	Description *Node
	Experiments []*ExperimentBlock
}
