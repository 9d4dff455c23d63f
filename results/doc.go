/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package results holds the in-memory model of a robustness evaluation result set and
the loader that materializes it from a JSON document.

# Overview

A result set has a free-form description (model and dataset metadata) and a list of
experiment blocks. Each block varies one parameter (for example "epsilon") and maps
every observed value of that parameter to a row of metrics:

	{
	  "description": {"model": "resnet18", "problem_type": "classification"},
	  "experiments": [
	    {
	      "name": "fgsm",
	      "variable_param_name": "epsilon",
	      "results": {
	        "0.0": {"acc": 0.9, "baseline_acc": 0.9},
	        "0.3": {"acc": 0.4, "baseline_acc": 0.9}
	      }
	    }
	  ]
	}

The loader keeps the document order of both the axis values and the metric names,
since the table layout and the categorical axis fallback depend on it.

# Errors

Load returns a *MissingInputError when the file does not exist and a
*MalformedInputError when the content is not valid JSON or lacks the required keys
(experiments, variable_param_name, results). Both are meant to abort a run before any
output is written.

# Description tree

The description is represented as a tree of Nodes rather than nested maps. Each node
is either a leaf holding a scalar Value or an ordered list of children. Objects nested
deeper than MaxDescriptionDepth are kept as a single leaf with their raw JSON text.
*/
package results
