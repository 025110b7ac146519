// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"fmt"
	"strings"
)

// RowType classifies a row of the split view.
type RowType int

const (
	RowUnchanged RowType = iota
	RowAdded
	RowRemoved
	RowModified
)

// RowTypes lists the row type names in display order.
var RowTypes = []string{"unchanged", "added", "removed", "modified"}

func (t RowType) String() string {
	if int(t) >= 0 && int(t) < len(RowTypes) {
		return RowTypes[t]
	}
	return "unknown"
}

// MarshalText encodes the row type by name.
func (t RowType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *RowType) UnmarshalText(b []byte) error {
	for i, name := range RowTypes {
		if strings.EqualFold(name, string(b)) {
			*t = RowType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown row type %q", string(b))
}

// Row is one line of the split view. WordDiff is only set for RowModified.
type Row struct {
	Type     RowType `json:"type" yaml:"type"`
	Number   int     `json:"line" yaml:"line"`
	Left     string  `json:"left" yaml:"left"`
	Right    string  `json:"right" yaml:"right"`
	WordDiff []Edit  `json:"word_diff,omitempty" yaml:"word_diff,omitempty"`
}

// SplitView is the side-by-side result for two documents.
type SplitView struct {
	Rows  []Row `json:"rows" yaml:"rows"`
	Stats Stats `json:"stats" yaml:"stats"`
}

// BuildRows compares the lines of left and right by position. The shorter
// document is padded with empty lines. Lines are not re-aligned when lines
// are inserted or deleted; only same-position differences are detected.
func BuildRows(left, right string) []Row {
	l := TokenizeLines(left)
	r := TokenizeLines(right)

	count := max(len(l), len(r))
	rows := make([]Row, count)
	for i := range count {
		var lt, rt string
		if i < len(l) {
			lt = l[i]
		}
		if i < len(r) {
			rt = r[i]
		}

		row := Row{Number: i + 1, Left: lt, Right: rt}
		switch {
		case lt == rt:
			row.Type = RowUnchanged
		case lt == "":
			row.Type = RowAdded
		case rt == "":
			row.Type = RowRemoved
		default:
			row.Type = RowModified
			row.WordDiff = Tokens(TokenizeWords(lt), TokenizeWords(rt))
		}
		rows[i] = row
	}
	return rows
}

// BuildSplitView builds the rows for left and right and their stats.
func BuildSplitView(left, right string) SplitView {
	v := SplitView{Rows: BuildRows(left, right)}
	v.Stats = ComputeStats(v.Edits())
	return v
}

// Edits flattens the rows into a line-level edit script. A modified row
// contributes a Removed edit for its left line followed by an Added edit for
// its right line.
func (v SplitView) Edits() []Edit {
	edits := make([]Edit, 0, len(v.Rows))
	for _, row := range v.Rows {
		switch row.Type {
		case RowUnchanged:
			edits = append(edits, Edit{Op: Unchanged, Text: row.Left})
		case RowAdded:
			edits = append(edits, Edit{Op: Added, Text: row.Right})
		case RowRemoved:
			edits = append(edits, Edit{Op: Removed, Text: row.Left})
		case RowModified:
			edits = append(edits,
				Edit{Op: Removed, Text: row.Left},
				Edit{Op: Added, Text: row.Right})
		}
	}
	return edits
}

// Changed returns the rows that are not RowUnchanged.
func (v SplitView) Changed() []Row {
	var rows []Row
	for _, row := range v.Rows {
		if row.Type != RowUnchanged {
			rows = append(rows, row)
		}
	}
	return rows
}
