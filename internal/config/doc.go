// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tdiff's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/tdiff.yaml or $HOME/.config/tdiff.yaml
//   - macOS: $HOME/Library/Application Support/tdiff.yaml
//   - Windows: %APPDATA%/tdiff.yaml
//
// TDIFF_CFG_FILE overrides the location. A typical file:
//
//	colors:
//	  added: "#2ea043"
//	  removed: "#f85149"
//	live:
//	  debounce: 250
//	split:
//	  defaults:
//	    - --titles
//	    - --color
package config
