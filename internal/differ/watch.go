// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/tfctl/tdiff/internal/debounce"
	"github.com/tfctl/tdiff/internal/output"
)

// Watch calls fn whenever one of paths is written, created, renamed or
// removed. Bursts of events are coalesced so fn runs once per quiet period of
// delay. The parent directories are watched so files replaced by rename are
// still followed. Watch blocks until ctx is done.
func Watch(ctx context.Context, paths []string, delay time.Duration, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.Debugf("watching %s", dir)
	}

	d := debounce.New(delay, fn)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !targets[filepath.Clean(event.Name)] || event.Op == fsnotify.Chmod {
				continue
			}

			log.Debugf("watch event: %s", event)
			d.Trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

// Session re-renders a comparison each time its inputs change. Refreshes
// whose result is structurally equal to the previous one are skipped.
type Session struct {
	Request Request
	Options output.Options
	// Delta prints only the change between consecutive results.
	Delta bool
	Out   io.Writer

	mu   sync.Mutex
	prev []byte
}

// Refresh recomputes the comparison and renders it when it changed. It
// reports whether anything was written.
func (s *Session) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	res, err := Compute(ctx, s.Request, nil)
	if err != nil {
		return false, err
	}

	export, err := Export(res)
	if err != nil {
		return false, err
	}

	if s.prev != nil {
		text, changed, err := Delta(s.prev, export, s.Options.Color)
		if err != nil {
			return false, err
		}
		if !changed {
			log.Debug("result unchanged, skipping refresh")
			return false, nil
		}
		if s.Delta {
			s.prev = export
			fmt.Fprintln(out, s.header())
			fmt.Fprint(out, text)
			return true, nil
		}
	}

	s.prev = export
	fmt.Fprintln(out, s.header())
	return true, Render(res, s.Options, out)
}

// header names both inputs with their modification times.
func (s *Session) header() string {
	describe := func(path, title string) string {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Sprintf("%s (missing)", title)
		}
		return fmt.Sprintf("%s (modified %s)", title, humanize.Time(fi.ModTime()))
	}
	return fmt.Sprintf("==> %s vs %s",
		describe(s.Request.Left.Path, s.Request.Left.Title),
		describe(s.Request.Right.Path, s.Request.Right.Title))
}
