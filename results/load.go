/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package results

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/tidwall/gjson"
)

// MaxDescriptionDepth bounds the nesting of the description tree.
const MaxDescriptionDepth = 4

// Load reads and parses the result set stored at path.
func Load(ctx context.Context, path string) (*ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rs, err := Parse(data)
	if err != nil {
		var me *MalformedInputError
		if errors.As(err, &me) {
			me.Path = path
		}
		return nil, err
	}

	clog.FromContext(ctx).Infof("Loaded %d experiment block(s) from %s", len(rs.Experiments), path)
	return rs, nil
}

// Parse builds a result set from a JSON document.
func Parse(data []byte) (*ResultSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, malformed("not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, malformed("top-level value must be an object")
	}

	rs := &ResultSet{}

	desc := root.Get("description")
	if !desc.Exists() {
		desc = root.Get("desc")
	}
	switch {
	case !desc.Exists() || desc.Type == gjson.Null:
		rs.Description = &Node{}
	case desc.IsObject():
		rs.Description = parseNode("", desc, 1)
	default:
		return nil, malformed("description must be an object")
	}

	experiments := root.Get("experiments")
	if !experiments.Exists() {
		return nil, malformed("missing required key %q", "experiments")
	}

	switch {
	case experiments.IsArray():
		var perr error
		idx := 0
		experiments.ForEach(func(_, block gjson.Result) bool {
			b, err := parseBlock("", block)
			if err != nil {
				perr = annotate(err, fmt.Sprintf("experiments[%d]", idx))
				return false
			}
			rs.Experiments = append(rs.Experiments, b)
			idx++
			return true
		})
		if perr != nil {
			return nil, perr
		}
	case experiments.IsObject():
		var perr error
		experiments.ForEach(func(key, block gjson.Result) bool {
			b, err := parseBlock(key.String(), block)
			if err != nil {
				perr = annotate(err, fmt.Sprintf("experiments[%q]", key.String()))
				return false
			}
			rs.Experiments = append(rs.Experiments, b)
			return true
		})
		if perr != nil {
			return nil, perr
		}
	default:
		return nil, malformed("experiments must be an array or an object")
	}

	return rs, nil
}

func annotate(err error, where string) error {
	var me *MalformedInputError
	if errors.As(err, &me) {
		me.Reason = where + ": " + me.Reason
		return me
	}
	return fmt.Errorf("%s: %w", where, err)
}

func parseBlock(name string, block gjson.Result) (*ExperimentBlock, error) {
	if !block.IsObject() {
		return nil, malformed("experiment block must be an object")
	}

	param := block.Get("variable_param_name")
	if !param.Exists() || param.Type != gjson.String || strings.TrimSpace(param.Str) == "" {
		return nil, malformed("missing required key %q", "variable_param_name")
	}

	b := &ExperimentBlock{
		Name:              name,
		VariableParamName: param.Str,
	}
	if n := block.Get("name"); n.Type == gjson.String {
		b.Name = n.Str
	} else if a := block.Get("attack"); b.Name == "" && a.Type == gjson.String {
		b.Name = a.Str
	}

	rows := block.Get("results")
	if !rows.Exists() {
		return nil, malformed("missing required key %q", "results")
	}
	if !rows.IsObject() {
		return nil, malformed("results must map parameter values to metric objects")
	}

	var perr error
	seen := make(map[string]int)
	rows.ForEach(func(key, metrics gjson.Result) bool {
		if !metrics.IsObject() {
			perr = malformed("results[%q] must be an object of metrics", key.String())
			return false
		}
		row := NewMetricRow()
		metrics.ForEach(func(metric, value gjson.Result) bool {
			row.Set(metric.String(), scalar(value))
			return true
		})
		// A repeated key keeps its first position and takes the last value.
		if i, ok := seen[key.String()]; ok {
			b.Entries[i].Row = row
			return true
		}
		seen[key.String()] = len(b.Entries)
		b.Entries = append(b.Entries, AxisEntry{Key: key.String(), Row: row})
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return b, nil
}

func parseNode(key string, r gjson.Result, depth int) *Node {
	n := &Node{Key: key}
	if !r.IsObject() || depth > MaxDescriptionDepth {
		v := scalar(r)
		n.Leaf = &v
		return n
	}
	r.ForEach(func(k, child gjson.Result) bool {
		n.Children = append(n.Children, parseNode(k.String(), child, depth+1))
		return true
	})
	return n
}

// scalar converts a gjson leaf. Numbers keep the int/float distinction of their literal.
func scalar(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Value{Kind: KindNull, Raw: "null"}
	case gjson.True, gjson.False:
		return Value{Kind: KindBool, Bool: r.Bool(), Raw: r.Raw}
	case gjson.String:
		return Value{Kind: KindText, Text: r.Str, Raw: r.Raw}
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			// Out-of-range integers keep Int at zero and print from Raw.
			i, _ := strconv.ParseInt(r.Raw, 10, 64)
			return Value{Kind: KindInt, Int: i, Float: r.Num, Raw: r.Raw}
		}
		return Value{Kind: KindFloat, Float: r.Num, Raw: r.Raw}
	default:
		return Value{Kind: KindRaw, Raw: r.Raw}
	}
}
