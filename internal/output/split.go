// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/tfctl/tdiff/internal/diff"
)

// SplitWriter renders the rows of v as a three column table (line number,
// left, right) followed by a stats footer. Modified rows carry their word
// diff inline. Output is written to w. If w is nil, os.Stdout is used.
func SplitWriter(v diff.SplitView, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	p := newPalette(opts.Color)

	var (
		headerStyle = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle   = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		footerStyle = lipgloss.NewStyle()
	)
	if p.enabled {
		headerStyle = headerStyle.Foreground(p.title)
		footerStyle = footerStyle.Foreground(p.title)
	}

	if len(v.Rows) > 0 {
		rows := make([][]string, 0, len(v.Rows))
		for _, row := range v.Rows {
			left, right := splitCells(row, p)
			rows = append(rows, []string{strconv.Itoa(row.Number), left, right})
		}

		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}

				style := cellStyle
				if col > 0 {
					style = style.PaddingLeft(2)
				}
				if !p.enabled || row < 0 || row >= len(v.Rows) {
					return style
				}

				// Modified rows already carry inline color, so only the
				// line number is tinted.
				switch v.Rows[row].Type {
				case diff.RowAdded:
					style = style.Foreground(p.added)
				case diff.RowRemoved:
					style = style.Foreground(p.removed)
				case diff.RowModified:
					if col == 0 {
						style = style.Foreground(p.modified)
					}
				}
				return style
			}).
			Headers().
			Rows(rows...)

		if opts.Titles {
			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers("#", titleOr(opts.LeftTitle, "left"), titleOr(opts.RightTitle, "right")).BorderHeader(false)
		}

		if opts.Width > 0 {
			t = t.Width(opts.Width)
		}

		fmt.Fprintln(w, t)
	}

	fmt.Fprintln(w, footerStyle.Render(StatsLine(v.Stats, "lines")))
}

// splitCells returns the left and right cell text for row.
func splitCells(row diff.Row, p palette) (string, string) {
	if row.Type != diff.RowModified {
		return row.Left, row.Right
	}

	var left, right strings.Builder
	for _, e := range row.WordDiff {
		switch e.Op {
		case diff.Unchanged:
			left.WriteString(e.Text)
			right.WriteString(e.Text)
		case diff.Removed:
			left.WriteString(p.mark(diff.Removed, e.Text))
		case diff.Added:
			right.WriteString(p.mark(diff.Added, e.Text))
		}
	}
	return left.String(), right.String()
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}

// Cells returns the plain left and right text for row, with wdiff markers
// on the words of modified rows.
func Cells(row diff.Row) (string, string) {
	return splitCells(row, newPalette(false))
}
