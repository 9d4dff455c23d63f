/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package results

import (
	"fmt"
	"io/fs"
)

// MissingInputError reports that the input document does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input file %s not found", e.Path)
}

// Unwrap lets errors.Is match fs.ErrNotExist.
func (e *MissingInputError) Unwrap() error {
	return fs.ErrNotExist
}

// MalformedInputError reports an input that is not valid JSON or lacks required keys.
type MalformedInputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", where, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", where, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) *MalformedInputError {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}
