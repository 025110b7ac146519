// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/differ"
	"github.com/tfctl/tdiff/internal/meta"
	"github.com/tfctl/tdiff/internal/output"
)

// statsCommandAction is the action handler for the "stats" subcommand. It
// computes the comparison like split or unified would and prints only the
// counts of what --changed and --filter keep.
func statsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "stats") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(diff.Stats{})) {
		return nil
	}

	config.Config.Namespace = "stats"

	req, err := requestFromCommand(cmd, modeFromCommand(cmd))
	if err != nil {
		return err
	}

	res, err := differ.Compute(ctx, req, stdin(cmd))
	if err != nil {
		return err
	}

	opts := optionsFromRequest(cmd, req)
	stats := differ.Filter(res, opts).Stats()
	log.Debugf("stats: %+v", stats)

	return output.SliceDiceSpit(stats, opts, stdout(cmd), func(w io.Writer) error {
		output.StatsWriter(stats, opts, w)
		return nil
	})
}

// statsCommandBuilder constructs the "stats" subcommand.
func statsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DiffCommandBuilder{
		Name:      "stats",
		Usage:     "added, removed and unchanged counts",
		UsageText: "tdiff stats LEFT RIGHT [--unified] [flags]",
		Flags: []cli.Flag{
			newUnifiedFlag(),
			NewGranularityFlag("stats", meta.Config.Source),
		},
		Exclude: []string{"titles", "width"},
		Action:  statsCommandAction,
		Meta:    meta,
	}).Build()
}
