// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/differ"
	"github.com/tfctl/tdiff/internal/meta"
)

// unifiedCommandAction is the action handler for the "unified" subcommand. It
// aligns LEFT and RIGHT at the selected granularity and renders a single
// stream of runs.
func unifiedCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "unified") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(diff.UnifiedView{})) {
		return nil
	}

	config.Config.Namespace = "unified"

	req, err := requestFromCommand(cmd, differ.UnifiedMode)
	if err != nil {
		return err
	}
	log.Debugf("granularity: %s", req.Granularity)

	_, err = differ.Diff(ctx, req, optionsFromRequest(cmd, req), stdin(cmd), stdout(cmd))
	return err
}

// unifiedCommandBuilder constructs the "unified" subcommand.
func unifiedCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DiffCommandBuilder{
		Name:      "unified",
		Usage:     "inline comparison at word, line or character granularity",
		UsageText: "tdiff unified LEFT RIGHT [--granularity words|lines|chars] [flags]",
		Flags: []cli.Flag{
			NewGranularityFlag("unified", meta.Config.Source),
		},
		Action: unifiedCommandAction,
		Meta:   meta,
	}).Build()
}
