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

// splitCommandAction is the action handler for the "split" subcommand. It
// compares LEFT and RIGHT line by line and renders the rows side by side.
func splitCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr or schema.
	if ShortCircuitTLDR(ctx, cmd, "split") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(diff.SplitView{})) {
		return nil
	}

	config.Config.Namespace = "split"

	req, err := requestFromCommand(cmd, differ.SplitMode)
	if err != nil {
		return err
	}

	_, err = differ.Diff(ctx, req, optionsFromRequest(cmd, req), stdin(cmd), stdout(cmd))
	return err
}

// splitCommandBuilder constructs the "split" subcommand.
func splitCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DiffCommandBuilder{
		Name:      "split",
		Usage:     "side by side line comparison",
		UsageText: "tdiff split LEFT RIGHT [flags]",
		Action:    splitCommandAction,
		Meta:      meta,
	}).Build()
}
