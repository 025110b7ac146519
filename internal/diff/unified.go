// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import "strings"

// Run is a maximal group of consecutive edits sharing an op.
type Run struct {
	Op     Op     `json:"op" yaml:"op"`
	Text   string `json:"text" yaml:"text"`
	Tokens int    `json:"tokens" yaml:"tokens"`
}

// UnifiedView is the single-stream result for two documents.
type UnifiedView struct {
	Granularity Granularity `json:"granularity" yaml:"granularity"`
	Edits       []Edit      `json:"edits" yaml:"edits"`
	Runs        []Run       `json:"runs" yaml:"runs"`
	Stats       Stats       `json:"stats" yaml:"stats"`
}

// BuildUnifiedView diffs left and right at granularity g.
func BuildUnifiedView(left, right string, g Granularity) UnifiedView {
	edits := Documents(left, right, g)
	return UnifiedView{
		Granularity: g,
		Edits:       edits,
		Runs:        Runs(edits, g),
		Stats:       ComputeStats(edits),
	}
}

// Runs merges consecutive edits with the same op. Line tokens are joined
// with "\n" so a run holds the text as it appears in the document.
func Runs(edits []Edit, g Granularity) []Run {
	var runs []Run
	var texts []string
	flush := func() {
		if len(texts) == 0 {
			return
		}
		runs[len(runs)-1].Text = g.Join(texts)
		runs[len(runs)-1].Tokens = len(texts)
		texts = nil
	}

	for _, e := range edits {
		if len(runs) == 0 || runs[len(runs)-1].Op != e.Op {
			flush()
			runs = append(runs, Run{Op: e.Op})
		}
		texts = append(texts, e.Text)
	}
	flush()

	return runs
}

// Lines splits the run text back into lines.
func (r Run) Lines() []string {
	return strings.Split(r.Text, "\n")
}
