// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"fmt"
	"strings"
)

// Op classifies a single token of an edit script.
type Op int

const (
	// Unchanged tokens appear in both documents.
	Unchanged Op = iota
	// Added tokens appear only in the right document.
	Added
	// Removed tokens appear only in the left document.
	Removed
)

// String returns the lowercase name of the op.
func (o Op) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Prefix returns the unified diff marker for the op.
func (o Op) Prefix() string {
	switch o {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// MarshalText encodes the op by name so JSON and YAML exports stay readable.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (o *Op) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "unchanged":
		*o = Unchanged
	case "added":
		*o = Added
	case "removed":
		*o = Removed
	default:
		return fmt.Errorf("unknown op %q", string(b))
	}
	return nil
}

// Edit is one entry of an edit script.
type Edit struct {
	Op   Op     `json:"op" yaml:"op"`
	Text string `json:"text" yaml:"text"`
}

// Stats counts the ops of an edit script.
type Stats struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Changes is the number of Added plus Removed ops.
func (s Stats) Changes() int {
	return s.Added + s.Removed
}

// ComputeStats scans edits and counts each op. Callers recompute it for every
// new script; nothing is patched incrementally.
func ComputeStats(edits []Edit) Stats {
	var s Stats
	for _, e := range edits {
		switch e.Op {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Unchanged:
			s.Unchanged++
		}
	}
	return s
}

// Left rebuilds the left token sequence from an edit script.
func Left(edits []Edit) []string {
	return side(edits, Removed)
}

// Right rebuilds the right token sequence from an edit script.
func Right(edits []Edit) []string {
	return side(edits, Added)
}

func side(edits []Edit, op Op) []string {
	out := make([]string, 0, len(edits))
	for _, e := range edits {
		if e.Op == Unchanged || e.Op == op {
			out = append(out, e.Text)
		}
	}
	return out
}
