// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package diff is the text comparison engine. It splits documents into
// tokens (lines, words with their trailing whitespace, or grapheme clusters),
// aligns two token sequences with a shortest edit script, and builds the two
// views the renderers consume:
//
//   - the unified view, a single stream of unchanged/added/removed edits in
//     document order, and
//   - the split view, a positional line-by-line table in which lines that
//     differ in place carry a word-level edit script of their own.
//
// Every function in this package is pure. Results are immutable values that
// are rebuilt from scratch for each pair of documents.
package diff
