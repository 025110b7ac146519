// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/tdiff/internal/diff"
)

// UnifiedWriter renders v as a single stream. Line granularity prints one
// prefixed line per edit. Word and char granularity print the merged runs
// inline with wdiff markers, or colors when enabled. Output is written to w.
// If w is nil, os.Stdout is used.
func UnifiedWriter(v diff.UnifiedView, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	p := newPalette(opts.Color)

	if opts.Titles {
		header := fmt.Sprintf("--- %s\n+++ %s", titleOr(opts.LeftTitle, "left"), titleOr(opts.RightTitle, "right"))
		if p.enabled {
			header = p.paint(lipgloss.NewStyle().Bold(true).Foreground(p.title), header)
		}
		fmt.Fprintln(w, header)
	}

	if v.Granularity == diff.Lines {
		edits := v.Edits
		// The empty token after a final newline is not a line of its own.
		if n := len(edits); n > 0 && edits[n-1].Op == diff.Unchanged && edits[n-1].Text == "" {
			edits = edits[:n-1]
		}

		for _, e := range edits {
			line := e.Op.Prefix() + e.Text
			if p.enabled && e.Op != diff.Unchanged {
				line = p.paint(p.style(e.Op).Strikethrough(false), line)
			}
			fmt.Fprintln(w, line)
		}
	} else {
		out := Markup(v.Runs)
		if p.enabled {
			var sb strings.Builder
			for _, run := range v.Runs {
				sb.WriteString(p.mark(run.Op, run.Text))
			}
			out = sb.String()
		}

		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		fmt.Fprint(w, out)
	}

	unit := v.Granularity.String()
	footer := StatsLine(v.Stats, unit)
	if p.enabled {
		footer = lipgloss.NewStyle().Foreground(p.title).Render(footer)
	}
	fmt.Fprintln(w, footer)
}

// Markup returns runs as plain text with wdiff markers around changed runs.
func Markup(runs []diff.Run) string {
	p := newPalette(false)

	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(p.mark(run.Op, run.Text))
	}
	return sb.String()
}
