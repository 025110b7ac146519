// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/tdiff/internal/diff"
)

// StatsWriter renders stats as a small key/value table.
func StatsWriter(s diff.Stats, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	p := newPalette(opts.Color)
	keyStyle := lipgloss.NewStyle().Bold(true)
	valueStyle := lipgloss.NewStyle().Align(lipgloss.Right).PaddingLeft(2)

	rows := [][]string{
		{"added", humanize.Comma(int64(s.Added))},
		{"removed", humanize.Comma(int64(s.Removed))},
		{"unchanged", humanize.Comma(int64(s.Unchanged))},
		{"changes", humanize.Comma(int64(s.Changes()))},
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			style := valueStyle
			if p.enabled {
				switch row {
				case 0:
					style = style.Foreground(p.added)
				case 1:
					style = style.Foreground(p.removed)
				}
			}
			return style
		}).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// TokensWriter renders one token per line with its index. Tokens are quoted
// so whitespace stays visible.
func TokensWriter(tokens []string, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	rows := make([][]string, 0, len(tokens))
	for i, tok := range tokens {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Quote(tok)})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = style.Bold(true)
			}
			if col > 0 {
				style = style.PaddingLeft(2)
			}
			return style
		}).
		Rows(rows...)

	if opts.Titles {
		t = t.Headers("#", "token").BorderHeader(false)
	}

	fmt.Fprintln(w, t)
	fmt.Fprintf(w, "%s tokens\n", humanize.Comma(int64(len(tokens))))
}
