// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"slices"
)

// Tokens computes a shortest edit script turning left into right using
// Myers' O(ND) algorithm. Only insertions and deletions are produced; a
// changed token becomes a Removed edit followed by an Added edit.
//
// When several shortest scripts exist, the one returned is whichever the
// greedy forward search reaches first and the backtrack recovers, preferring
// an insertion over a deletion when both reach the same point. This need not
// be the script an LCS table walked back-pointer by back-pointer would give:
// [a a a a] to [b a c c c] yields +b =a -a -a -a +c +c +c. Scripts are always
// minimal and identical inputs always produce identical scripts.
func Tokens(left, right []string) []Edit {
	switch {
	case len(left) == 0 && len(right) == 0:
		return nil
	case len(left) == 0:
		return all(right, Added)
	case len(right) == 0:
		return all(left, Removed)
	case disjoint(left, right):
		return append(all(left, Removed), all(right, Added)...)
	}

	trace := forward(left, right)
	return backtrack(left, right, trace)
}

// Documents tokenizes both documents with g and aligns the tokens.
func Documents(left, right string, g Granularity) []Edit {
	return Tokens(g.Tokenize(left), g.Tokenize(right))
}

func all(tokens []string, op Op) []Edit {
	edits := make([]Edit, len(tokens))
	for i, t := range tokens {
		edits[i] = Edit{Op: op, Text: t}
	}
	return edits
}

// disjoint reports whether no token of right occurs in left.
func disjoint(left, right []string) bool {
	seen := make(map[string]struct{}, len(left))
	for _, t := range left {
		seen[t] = struct{}{}
	}
	for _, t := range right {
		if _, ok := seen[t]; ok {
			return false
		}
	}
	return true
}

// frontier is the furthest reaching x for each diagonal k in [-d, d] after
// round d. Diagonals that cannot be reached inside the edit graph hold -1.
type frontier []int

func (f frontier) at(k int) int {
	d := (len(f) - 1) / 2
	if k < -d || k > d {
		return -1
	}
	return f[k+d]
}

// step picks the predecessor for diagonal k in round d given the frontier of
// round d-1. It returns the starting x on k (before following the snake) and
// whether the move was an insertion (down) rather than a deletion (right).
// The move reaching the larger x wins; on a tie the insertion wins so that
// deletions end up first in the script.
func step(prev frontier, k, n, m int) (x int, down bool) {
	x = -1

	if px := prev.at(k + 1); px >= 0 && px-k <= m {
		x, down = px, true
	}
	if px := prev.at(k - 1); px >= 0 && px+1 <= n && px+1 > x {
		x, down = px+1, false
	}

	return x, down
}

// forward runs the greedy search and returns the frontier of every round,
// the last one containing the endpoint (n, m).
func forward(a, b []string) []frontier {
	n, m := len(a), len(b)

	snake := func(x, k int) int {
		for y := x - k; x < n && y < m && a[x] == b[y]; y++ {
			x++
		}
		return x
	}

	trace := []frontier{{snake(0, 0)}}
	if trace[0][0] >= n && trace[0][0] >= m {
		return trace
	}

	for d := 1; d <= n+m; d++ {
		prev := trace[d-1]
		cur := make(frontier, 2*d+1)
		for i := range cur {
			cur[i] = -1
		}
		// Entries of the other parity carry over unchanged from round d-1.
		for k := -(d - 1); k <= d-1; k++ {
			cur[k+d] = prev.at(k)
		}

		for k := -d; k <= d; k += 2 {
			x, _ := step(prev, k, n, m)
			if x < 0 {
				cur[k+d] = -1
				continue
			}
			x = snake(x, k)
			cur[k+d] = x
			if x >= n && x-k >= m {
				return append(trace, cur)
			}
		}
		trace = append(trace, cur)
	}

	return trace
}

// backtrack walks the trace from (n, m) back to the origin and emits the
// script in document order.
func backtrack(a, b []string, trace []frontier) []Edit {
	n, m := len(a), len(b)
	x, y := n, m

	edits := make([]Edit, 0, n+m)
	for d := len(trace) - 1; d > 0; d-- {
		k := x - y
		start, down := step(trace[d-1], k, n, m)
		// The snake on diagonal k runs from start to x.
		for x > start {
			x--
			y--
			edits = append(edits, Edit{Op: Unchanged, Text: a[x]})
		}
		if down {
			y--
			edits = append(edits, Edit{Op: Added, Text: b[y]})
		} else {
			x--
			edits = append(edits, Edit{Op: Removed, Text: a[x]})
		}
	}
	for x > 0 {
		x--
		y--
		edits = append(edits, Edit{Op: Unchanged, Text: a[x]})
	}

	slices.Reverse(edits)
	return edits
}
