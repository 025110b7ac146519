// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/tdiff/internal/cacheutil"
	"github.com/tfctl/tdiff/internal/command"
	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/log"
	"github.com/tfctl/tdiff/internal/version"
)

var ctx = context.Background()

// defaultPurgeHours is how long live drafts are kept when drafts.purge is not
// configured.
const defaultPurgeHours = 24 * 30

// valueFlags are the flags that take a separate value argument. Short aliases
// map to their long name.
var valueFlags = map[string]string{
	"filter":      "filter",
	"f":           "filter",
	"granularity": "granularity",
	"g":           "granularity",
	"output":      "output",
	"o":           "output",
	"query":       "query",
	"q":           "query",
	"width":       "width",
	"W":           "width",
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)
		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	hours, _ := config.GetInt("drafts.purge", defaultPurgeHours)
	if err := cacheutil.Purge(hours); err != nil {
		log.Debugf("draft purge err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands. An explicit @set
// argument is replaced by the entries of <cmd>.<set> from the config file.
// Without one, <cmd>.defaults is injected right after the command.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			removeIdx := idx + i
			args = append(args[:removeIdx:removeIdx], args[removeIdx+1:]...)
			return injectConfigSet(args, args[1]+"."+a[1:], removeIdx)
		}
	}

	return injectConfigSet(args, args[1]+".defaults", idx)
}

// injectConfigSet expands the string slice at key into args at insertIdx.
// Each entry is split on whitespace so "--output json" becomes two args.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, _ := config.GetStringSlice(key)
	if len(entries) == 0 {
		return args
	}
	log.Debugf("injecting %s: %v", key, entries)

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	if insertIdx > len(args) {
		insertIdx = len(args)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins. This lets explicit flags override those injected from a config
// set. Positional arguments, including "-" for stdin, are always kept, as is
// everything after "--".
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name  string
		parts []string
	}

	var groups []group
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]

		if a == "--" {
			groups = append(groups, group{parts: rest[i:]})
			break
		}

		if a == "-" || !strings.HasPrefix(a, "-") {
			groups = append(groups, group{parts: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		if eq := strings.Index(name, "="); eq >= 0 {
			name = name[:eq]
			if long, ok := valueFlags[name]; ok {
				name = long
			}
			groups = append(groups, group{name: name, parts: []string{a}})
			continue
		}

		if long, ok := valueFlags[name]; ok && i+1 < len(rest) {
			groups = append(groups, group{name: long, parts: []string{a, rest[i+1]}})
			i++
			continue
		}

		groups = append(groups, group{name: name, parts: []string{a}})
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && last[g.name] != i {
			continue
		}
		out = append(out, g.parts...)
	}
	return out
}
