// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tdiff/internal/output"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{target}, 20*time.Millisecond, func() { calls.Add(1) })
	}()

	// Give the watcher a moment to register before generating events.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("noise"), 0o600))
	assert.Never(t, func() bool { return calls.Load() > 0 }, 150*time.Millisecond, 10*time.Millisecond)

	for i := range 5 {
		require.NoError(t, os.WriteFile(target, []byte{byte('a' + i)}, 0o600))
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Replace by rename, as editors do.
	tmp := filepath.Join(dir, "watched.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o600))
	require.NoError(t, os.Rename(tmp, target))
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), []string{"/nonexistent/dir/file.txt"}, time.Millisecond, func() {})
	assert.ErrorContains(t, err, "failed to watch")
}

func TestSession_Refresh(t *testing.T) {
	l, r := writeInputs(t, "a\nb\n", "a\nb\n")

	var buf bytes.Buffer
	s := &Session{
		Request: Request{Left: l, Right: r},
		Options: output.Options{Output: "text"},
		Out:     &buf,
	}

	wrote, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Contains(t, buf.String(), "left.txt (modified")
	assert.Contains(t, buf.String(), "==> ")
	assert.Contains(t, buf.String(), "0 added, 0 removed, 3 unchanged lines")

	buf.Reset()
	wrote, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, wrote, "unchanged result is not re-rendered")
	assert.Empty(t, buf.String())

	require.NoError(t, os.WriteFile(r.Path, []byte("a\nc\n"), 0o600))
	wrote, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Contains(t, buf.String(), "1 added, 1 removed, 2 unchanged lines")
}

func TestSession_RefreshDelta(t *testing.T) {
	l, r := writeInputs(t, "a\nb\n", "a\nb\n")

	var buf bytes.Buffer
	s := &Session{Request: Request{Left: l, Right: r}, Options: output.Options{Output: "text"}, Delta: true, Out: &buf}

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, os.WriteFile(l.Path, []byte("a\nB\n"), 0o600))
	wrote, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Contains(t, buf.String(), "==>")
	assert.Contains(t, buf.String(), "modified")
	assert.NotContains(t, buf.String(), "unchanged lines", "delta output omits the full view")
}

func TestSession_RefreshMissingInput(t *testing.T) {
	l, r := writeInputs(t, "a", "b")
	require.NoError(t, os.Remove(l.Path))

	s := &Session{Request: Request{Left: l, Right: r}, Out: &bytes.Buffer{}}
	_, err := s.Refresh(context.Background())
	assert.Error(t, err)
	assert.Contains(t, s.header(), "left.txt (missing)")
}
