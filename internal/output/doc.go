// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output provides filtering and emission utilities used by commands
// to present diff results as text tables, inline markup, or JSON/YAML
// exports.
package output
