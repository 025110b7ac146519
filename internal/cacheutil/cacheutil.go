// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps the drafts of live editing sessions on disk so a
// session can be resumed later.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/tdiff/internal/log"
)

// draftDir is the subdirectory of the cache base that holds drafts.
const draftDir = "drafts"

// Draft is the saved state of a live session.
type Draft struct {
	Key   string    `json:"key"`
	Left  string    `json:"left"`
	Right string    `json:"right"`
	Saved time.Time `json:"saved"`
}

// Dir resolves the base cache directory.
// Precedence:
//  1. TDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/tdiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("TDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tdiff"), true
	}
	return "", false
}

// Enabled returns true unless TDIFF_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("TDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("cache dir: path=%s", base)
	return base, true, nil
}

// DraftKey returns the session key for a pair of inputs. Sessions started
// without files share the key of two empty paths.
func DraftKey(leftPath, rightPath string) string {
	return leftPath + "\x00" + rightPath
}

// DraftPath returns the file a draft for key lives in and whether it exists.
func DraftPath(key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, draftDir, encodeKey(key))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// LoadDraft returns the draft saved under key.
func LoadDraft(key string) (Draft, bool) {
	if !Enabled() {
		return Draft{}, false
	}

	p, ok := DraftPath(key)
	if !ok {
		return Draft{}, false
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return Draft{}, false
	}

	var d Draft
	if err := json.Unmarshal(b, &d); err != nil {
		log.WithError(err).Warnf("ignoring unreadable draft %s", p)
		return Draft{}, false
	}

	// Hash collisions are not expected but a mismatched key is not ours.
	if d.Key != key {
		return Draft{}, false
	}

	log.Debugf("draft hit: path=%s", p)
	return d, true
}

// SaveDraft stores left and right under key, creating directories as needed.
func SaveDraft(key, left, right string) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}

	dir := filepath.Join(base, draftDir)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create draft directory: %w", err)
	}

	b, err := json.Marshal(Draft{Key: key, Left: left, Right: right, Saved: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	p := filepath.Join(dir, encodeKey(key))
	if err := os.WriteFile(p, b, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write draft: %w", err)
	}
	log.Debugf("draft write: path=%s", p)
	return nil
}

// Purge removes drafts older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("draft cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(filepath.Join(base, draftDir), func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed draft %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove draft %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge drafts: %w", err)
	}
	return nil
}

// encodeKey returns the hex sha256 of input, used as the draft filename.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
