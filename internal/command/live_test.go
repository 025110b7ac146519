// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/cacheutil"
	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/differ"
	"github.com/tfctl/tdiff/internal/meta"
)

// liveOptions runs the live command with its action replaced so only the
// option resolution happens.
func liveOptions(t *testing.T, dir string, args ...string) (differ.LiveOptions, string, error) {
	t.Helper()

	var (
		opts differ.LiveOptions
		key  string
		err  error
	)

	cmd := liveCommandBuilder(meta.Meta{Args: append([]string{"tdiff"}, args...), StartingDir: dir})
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		opts, key, err = liveOptionsFromCommand(c)
		return nil
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"live"}, args...)))
	return opts, key, err
}

func TestLiveOptions(t *testing.T) {
	t.Setenv("TDIFF_CACHE_DIR", t.TempDir())
	dir, lp, rp := writeDocs(t, "old\n", "new\n")

	t.Run("no inputs", func(t *testing.T) {
		opts, key, err := liveOptions(t, dir)
		require.NoError(t, err)
		assert.Equal(t, cacheutil.DraftKey("", ""), key)
		assert.Empty(t, opts.Left)
		assert.Equal(t, differ.SplitMode, opts.Mode)
		assert.Equal(t, diff.Words, opts.Granularity)
		assert.Greater(t, opts.Delay, time.Duration(0))
	})

	t.Run("files", func(t *testing.T) {
		opts, key, err := liveOptions(t, dir, "left.txt", "right.txt", "--unified", "-g", "chars")
		require.NoError(t, err)
		assert.Equal(t, cacheutil.DraftKey(lp, rp), key)
		assert.Equal(t, "old\n", opts.Left)
		assert.Equal(t, "new\n", opts.Right)
		assert.Equal(t, "left.txt", opts.LeftTitle)
		assert.Equal(t, differ.UnifiedMode, opts.Mode)
		assert.Equal(t, diff.Chars, opts.Granularity)
	})

	t.Run("resume", func(t *testing.T) {
		require.NoError(t, cacheutil.SaveDraft(cacheutil.DraftKey(lp, rp), "draft left", "draft right"))

		opts, _, err := liveOptions(t, dir, "left.txt", "right.txt", "--resume")
		require.NoError(t, err)
		assert.Equal(t, "draft left", opts.Left)
		assert.Equal(t, "draft right", opts.Right)

		// Without --resume the files win.
		opts, _, err = liveOptions(t, dir, "left.txt", "right.txt")
		require.NoError(t, err)
		assert.Equal(t, "old\n", opts.Left)
	})

	t.Run("stdin", func(t *testing.T) {
		_, _, err := liveOptions(t, dir, "-", "right.txt")
		assert.ErrorIs(t, err, ErrLiveStdin)
	})

	t.Run("one input", func(t *testing.T) {
		_, _, err := liveOptions(t, dir, "left.txt")
		assert.ErrorContains(t, err, "expected no inputs")
	})
}

func TestUnitOf(t *testing.T) {
	assert.Equal(t, "lines", unitOf(differ.LiveOptions{}))
	assert.Equal(t, "chars", unitOf(differ.LiveOptions{Mode: differ.UnifiedMode, Granularity: diff.Chars}))
}

func TestLiveSummary(t *testing.T) {
	tests := []struct {
		name  string
		final differ.LiveOptions
		want  string
	}{
		{
			name:  "split",
			final: differ.LiveOptions{Left: "a b", Right: "a c", Mode: differ.SplitMode, Granularity: diff.Words},
			want:  "1 added, 1 removed, 0 unchanged lines",
		},
		{
			name:  "toggled to unified words",
			final: differ.LiveOptions{Left: "a b", Right: "a c", Mode: differ.UnifiedMode, Granularity: diff.Words},
			want:  "1 added, 1 removed, 1 unchanged words",
		},
		{
			name:  "toggled to unified chars",
			final: differ.LiveOptions{Left: "ab", Right: "ac", Mode: differ.UnifiedMode, Granularity: diff.Chars},
			want:  "1 added, 1 removed, 1 unchanged chars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, liveSummary(tt.final))
		})
	}
}
