// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdinSpec is the input spec that selects standard input.
const StdinSpec = "-"

// ErrStdinTwice is returned when both sides of a comparison ask for stdin.
var ErrStdinTwice = errors.New("stdin can only be used for one input")

// Input is a resolved document source. Path is empty for stdin. Title is the
// label shown above the document's column.
type Input struct {
	Path  string
	Title string
}

// IsStdin reports whether the input reads from standard input.
func (i Input) IsStdin() bool {
	return i.Path == ""
}

// ParseInput parses an input spec of the form path[::title] and returns the
// resolved Input. A path of "-" selects stdin. Relative paths are resolved
// against dir, or the current working directory when dir is empty. It returns
// an error if the fs entry does not exist or is a directory.
func ParseInput(spec, dir string) (Input, error) {
	if spec == "" {
		return Input{}, os.ErrInvalid
	}

	// First, split off an optional ::title override.
	parts := strings.SplitN(spec, "::", 2)
	path := parts[0]

	var in Input
	if len(parts) > 1 {
		in.Title = parts[1]
	}

	if path == StdinSpec {
		if in.Title == "" {
			in.Title = "stdin"
		}
		return in, nil
	}

	if !filepath.IsAbs(path) {
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return Input{}, err
			}
			dir = cwd
		}
		path = filepath.Join(dir, path)
	}

	if fi, err := os.Stat(path); err != nil {
		return Input{}, err
	} else if fi.IsDir() {
		return Input{}, fmt.Errorf("%s: %w", path, os.ErrInvalid)
	}

	in.Path = path
	if in.Title == "" {
		in.Title = parts[0]
	}

	return in, nil
}

// ParseInputs resolves the left and right specs of a comparison.
func ParseInputs(left, right, dir string) (Input, Input, error) {
	l, err := ParseInput(left, dir)
	if err != nil {
		return Input{}, Input{}, fmt.Errorf("left input: %w", err)
	}

	r, err := ParseInput(right, dir)
	if err != nil {
		return Input{}, Input{}, fmt.Errorf("right input: %w", err)
	}

	if l.IsStdin() && r.IsStdin() {
		return Input{}, Input{}, ErrStdinTwice
	}

	return l, r, nil
}

// Read returns the document contents of in. stdin is read from r.
func (i Input) Read(r io.Reader) (string, error) {
	if i.IsStdin() {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(i.Path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
