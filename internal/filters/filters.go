// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. It matches a key, and optionally an
// operator (with optional negation) and target. Operators are one of
// = ^ ~ < > @ or /, optionally prefixed with '!'. Examples:
// "type" (key only), "type=modified" (key + operator + target),
// "left=" (key + operator, no target).
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// keyAliases lets one expression address both split rows and unified runs.
var keyAliases = map[string]string{
	"type": "op",
	"op":   "type",
}

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("TDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		// parts[1] is the key
		// parts[2] is the optional operator (may include negation like "!")
		// parts[3] is the optional target
		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}

		// A bare key is a presence check.
		if operand == "" && target != "" {
			log.Error("invalid filter: missing operand in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Apply returns the items that match every filter in spec, in their original
// order. Items are matched through their JSON form.
func Apply[T any](items []T, spec string) []T {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return items
	}

	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var kept []T
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			log.WithError(err).Error("filter: cannot marshal candidate")
			continue
		}

		if applyFilters(gjson.ParseBytes(raw), filters) {
			kept = append(kept, item)
		}
	}

	return kept
}

// applyFilters returns true if the candidate matches all of the provided
// filters.
func applyFilters(candidate gjson.Result, filters []Filter) bool {
	for _, filter := range filters {
		value := lookup(candidate, filter.Key)

		// Bare key: keep candidates where the key is present and non-empty.
		if filter.Operand == "" {
			if !value.Exists() || value.String() == "" {
				return false
			}
			continue
		}

		if !value.Exists() {
			log.Debug(fmt.Sprintf("filter key not found: %s", filter.Key))
			if !filter.Negate {
				return false
			}
			continue
		}

		var result bool
		switch value.Type {
		case gjson.Number:
			result = checkNumericOperand(value.Num, filter)
		default:
			result = checkStringOperand(value.String(), filter)
		}

		if !result {
			return false
		}
	}

	return true
}

// lookup resolves key against candidate, trying its alias when the key itself
// is absent.
func lookup(candidate gjson.Result, key string) gjson.Result {
	value := candidate.Get(key)
	if !value.Exists() {
		if alias, ok := keyAliases[key]; ok {
			value = candidate.Get(alias)
		}
	}
	return value
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Targets that are not numbers fall back to string
// comparison.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
