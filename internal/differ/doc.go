// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ reads the two sides of a comparison, runs the diff engine,
// and drives the interactive surfaces built on it: the watch loop and the
// live editor.
package differ
