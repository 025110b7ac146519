// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Formats lists the supported --output values.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options controls how a result is filtered and rendered.
type Options struct {
	Output     string
	Query      string
	Filter     string
	Changed    bool
	Color      bool
	Titles     bool
	Width      int
	LeftTitle  string
	RightTitle string
}

// OptionsFromCommand reads the rendering flags from cmd. Flags a command does
// not define keep their zero value. A zero --width falls back to the terminal
// width when stdout is a terminal.
func OptionsFromCommand(cmd *cli.Command) Options {
	opts := Options{
		Output:  cmd.String("output"),
		Query:   cmd.String("query"),
		Filter:  cmd.String("filter"),
		Changed: cmd.Bool("changed"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Width:   cmd.Int("width"),
	}

	if opts.Output == "" {
		opts.Output = "text"
	}

	if opts.Width == 0 {
		opts.Width = TerminalWidth()
	}

	return opts
}

// TerminalWidth returns the width of stdout, or 0 when stdout is not a
// terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}

	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
