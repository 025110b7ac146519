// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides filtering of diff results (split rows and unified
// runs) ahead of rendering.
//
// Filters are specified as key-operator-target expressions and can be
// combined using a configurable delimiter (default: comma, override with
// TDIFF_FILTER_DELIM). Every expression must match for a record to be kept.
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains substring (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "type=modified" : rows whose type is modified
//   - "type!=unchanged" : every changed row or run
//   - "left@TODO" : rows whose left side contains "TODO"
//   - "line>100" : rows after line 100
//   - "text/^func " : runs whose text starts a Go function
//
// Filter Keys:
//
// Keys are gjson paths into the JSON form of a record. Split rows expose
// type, line, left, right and word_diff. Unified runs expose op, text and
// tokens. "type" and "op" are interchangeable so one expression works for
// both views.
//
// Filter Parsing:
//
// The BuildFilters function parses a delimited filter specification string.
// Malformed expressions are logged and skipped, allowing partial filter sets
// to be processed.
package filters
