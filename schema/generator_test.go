/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"testing"

	"chainguard.dev/robustreport/schema"
	"github.com/google/go-cmp/cmp"
)

func TestInput(t *testing.T) {
	s := schema.Input()
	if s == nil {
		t.Fatal("expected schema")
	}
	if s.Title == "" {
		t.Error("expected a title")
	}
	if diff := cmp.Diff([]string{"experiments"}, s.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}

	exps, ok := s.Properties.Get("experiments")
	if !ok {
		t.Fatal("missing experiments property")
	}
	if exps.Type != "array" || exps.Items == nil {
		t.Fatalf("experiments should be an array, got %q", exps.Type)
	}
	if diff := cmp.Diff([]string{"variable_param_name", "results"}, exps.Items.Required); diff != "" {
		t.Errorf("experiment required mismatch (-want +got):\n%s", diff)
	}

	vp, ok := exps.Items.Properties.Get("variable_param_name")
	if !ok {
		t.Fatal("missing variable_param_name property")
	}
	if vp.Description == "" {
		t.Error("expected a description for variable_param_name")
	}
}

func TestInputJSON(t *testing.T) {
	data, err := schema.InputJSON()
	if err != nil {
		t.Fatalf("InputJSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if decoded["type"] != "object" {
		t.Errorf("unexpected root type %v", decoded["type"])
	}
}
