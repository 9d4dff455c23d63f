/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema publishes the JSON schema of the evaluation results document.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Document mirrors the accepted results document. The loader is more lenient
// than this schema: experiments may also be keyed by name, and the legacy
// "desc" and "attack" keys are accepted.
type Document struct {
	Description map[string]any `json:"description,omitempty" jsonschema:"description=Free-form model and run configuration; nested objects are rendered as a tree"`
	Experiments []Experiment   `json:"experiments" jsonschema:"required,description=Experiment blocks in report order"`
}

// Experiment is one block of results measured along a single axis.
type Experiment struct {
	Name              string                    `json:"name,omitempty" jsonschema:"description=Block title; defaults to the variable parameter name"`
	VariableParamName string                    `json:"variable_param_name" jsonschema:"required,description=Name of the parameter varied along the axis"`
	Results           map[string]map[string]any `json:"results" jsonschema:"required,description=Metric values keyed by axis value then metric name"`
}

// reflector inlines definitions and tolerates extra keys, since the loader
// ignores anything it does not know.
var reflector = jsonschema.Reflector{
	RequiredFromJSONSchemaTags: true,
	ExpandedStruct:             true,
	AllowAdditionalProperties:  true,
	DoNotReference:             true,
}

// Input returns the schema of the results document.
func Input() *jsonschema.Schema {
	s := reflector.Reflect(&Document{})
	s.Title = "Robustness evaluation results"
	return s
}

// InputJSON returns the indented schema document.
func InputJSON() ([]byte, error) {
	return json.MarshalIndent(Input(), "", "  ")
}
