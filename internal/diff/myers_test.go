// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package diff

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(s string) Edit { return Edit{Op: Unchanged, Text: s} }
func a(s string) Edit { return Edit{Op: Added, Text: s} }
func r(s string) Edit { return Edit{Op: Removed, Text: s} }

func TestTokens(t *testing.T) {
	tests := []struct {
		name      string
		left      []string
		right     []string
		want      []Edit
		wantStats Stats
	}{
		{
			name:      "identical",
			left:      []string{"a", "b", "c"},
			right:     []string{"a", "b", "c"},
			want:      []Edit{u("a"), u("b"), u("c")},
			wantStats: Stats{Unchanged: 3},
		},
		{
			name:      "insertion in the middle",
			left:      []string{"a", "b"},
			right:     []string{"a", "c", "b"},
			want:      []Edit{u("a"), a("c"), u("b")},
			wantStats: Stats{Added: 1, Unchanged: 2},
		},
		{
			name:      "tie follows the forward search",
			left:      []string{"a", "a", "a", "a"},
			right:     []string{"b", "a", "c", "c", "c"},
			want:      []Edit{a("b"), u("a"), r("a"), r("a"), r("a"), a("c"), a("c"), a("c")},
			wantStats: Stats{Added: 4, Removed: 3, Unchanged: 1},
		},
		{
			name:      "empty left",
			left:      nil,
			right:     []string{"x", "y"},
			want:      []Edit{a("x"), a("y")},
			wantStats: Stats{Added: 2},
		},
		{
			name:      "empty right",
			left:      []string{"x", "y"},
			right:     []string{},
			want:      []Edit{r("x"), r("y")},
			wantStats: Stats{Removed: 2},
		},
		{
			name:      "both empty",
			left:      nil,
			right:     nil,
			want:      nil,
			wantStats: Stats{},
		},
		{
			name:      "no common tokens",
			left:      []string{"a", "b"},
			right:     []string{"x", "y", "z"},
			want:      []Edit{r("a"), r("b"), a("x"), a("y"), a("z")},
			wantStats: Stats{Added: 3, Removed: 2},
		},
		{
			name:      "substitution is removed then added",
			left:      []string{"a", "b", "c"},
			right:     []string{"a", "x", "c"},
			want:      []Edit{u("a"), r("b"), a("x"), u("c")},
			wantStats: Stats{Added: 1, Removed: 1, Unchanged: 2},
		},
		{
			name:      "deletion at the end",
			left:      []string{"a", "b", "c"},
			right:     []string{"a", "b"},
			want:      []Edit{u("a"), u("b"), r("c")},
			wantStats: Stats{Removed: 1, Unchanged: 2},
		},
		{
			name:      "insertion at the front",
			left:      []string{"b", "c"},
			right:     []string{"a", "b", "c"},
			want:      []Edit{a("a"), u("b"), u("c")},
			wantStats: Stats{Added: 1, Unchanged: 2},
		},
		{
			name:      "repeated token matches earliest position",
			left:      []string{"a"},
			right:     []string{"a", "a"},
			want:      []Edit{u("a"), a("a")},
			wantStats: Stats{Added: 1, Unchanged: 1},
		},
		{
			name:      "block change keeps removals first",
			left:      []string{"a", "b", "c", "d"},
			right:     []string{"a", "x", "y", "d"},
			want:      []Edit{u("a"), r("b"), r("c"), a("x"), a("y"), u("d")},
			wantStats: Stats{Added: 2, Removed: 2, Unchanged: 2},
		},
		{
			name:      "empty tokens",
			left:      []string{""},
			right:     []string{"abc"},
			want:      []Edit{r(""), a("abc")},
			wantStats: Stats{Added: 1, Removed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.left, tt.right)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStats, ComputeStats(got))
		})
	}
}

func TestDocumentsWordScenario(t *testing.T) {
	got := Documents("the quick fox", "the slow fox", Words)
	assert.Equal(t, []Edit{u("the "), r("quick "), a("slow "), u("fox")}, got)
}

// lcsLength is the quadratic reference used to check minimality.
func lcsLength(x, y []string) int {
	prev := make([]int, len(y)+1)
	cur := make([]int, len(y)+1)
	for i := 1; i <= len(x); i++ {
		for j := 1; j <= len(y); j++ {
			switch {
			case x[i-1] == y[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(y)]
}

func randomTokens(rng *rand.Rand, alphabet string, maxLen int) []string {
	n := rng.IntN(maxLen + 1)
	out := make([]string, n)
	for i := range out {
		out[i] = string(alphabet[rng.IntN(len(alphabet))])
	}
	return out
}

func TestTokensProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		alphabet := "abcd"
		if i%5 == 0 {
			alphabet = "ab"
		}
		left := randomTokens(rng, alphabet, 24)
		right := randomTokens(rng, alphabet, 24)
		name := fmt.Sprintf("%v->%v", left, right)

		got := Tokens(left, right)

		// Coverage.
		require.Equal(t, emptyAsNil(left), emptyAsNil(Left(got)), name)
		require.Equal(t, emptyAsNil(right), emptyAsNil(Right(got)), name)

		// Minimality.
		stats := ComputeStats(got)
		lcs := lcsLength(left, right)
		require.Equal(t, len(left)+len(right)-2*lcs, stats.Changes(), name)
		require.Equal(t, lcs, stats.Unchanged, name)
		require.LessOrEqual(t, stats.Changes(), len(left)+len(right), name)

		// Determinism.
		require.Equal(t, got, Tokens(left, right), name)

		// Within a change block removals come first.
		for j := 1; j < len(got); j++ {
			require.False(t, got[j-1].Op == Added && got[j].Op == Removed, "%s: added before removed at %d", name, j)
		}
	}
}

func TestTokensIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 50; i++ {
		tokens := randomTokens(rng, "xyz", 40)
		got := Tokens(tokens, tokens)
		stats := ComputeStats(got)
		assert.Zero(t, stats.Added)
		assert.Zero(t, stats.Removed)
		assert.Equal(t, len(tokens), stats.Unchanged)
	}
}

func TestTokensNoLongerThanDiffMatchPatch(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	for i := 0; i < 100; i++ {
		left := randomTokens(rng, "abcde", 30)
		right := randomTokens(rng, "abcde", 30)
		leftDoc := strings.Join(left, "\n") + "\n"
		rightDoc := strings.Join(right, "\n") + "\n"

		ours := ComputeStats(Documents(leftDoc, rightDoc, Lines)).Changes()

		ra, rb, _ := dmp.DiffLinesToRunes(leftDoc, rightDoc)
		theirs := 0
		for _, d := range dmp.DiffMainRunes(ra, rb, false) {
			if d.Type != diffmatchpatch.DiffEqual {
				theirs += utf8.RuneCountInString(d.Text)
			}
		}

		assert.LessOrEqual(t, ours, theirs, "%q -> %q", leftDoc, rightDoc)
	}
}

func TestTokensLargeInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	left := randomTokens(rng, "abcdefghij", 3000)
	right := make([]string, len(left))
	copy(right, left)
	for i := 0; i < len(right)/10; i++ {
		right[rng.IntN(len(right))] = "Z"
	}

	start := time.Now()
	got := Tokens(left, right)
	elapsed := time.Since(start)

	assert.Equal(t, emptyAsNil(left), emptyAsNil(Left(got)))
	assert.Equal(t, emptyAsNil(right), emptyAsNil(Right(got)))
	if !testing.Short() {
		assert.Less(t, elapsed, 2*time.Second)
	}
}

func emptyAsNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
