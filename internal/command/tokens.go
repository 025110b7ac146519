// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/meta"
	"github.com/tfctl/tdiff/internal/output"
	"github.com/tfctl/tdiff/internal/util"
)

// tokensCommandAction is the action handler for the "tokens" subcommand. It
// prints the token sequence of a single document at the selected granularity.
func tokensCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "tokens") {
		return nil
	}

	config.Config.Namespace = "tokens"

	spec := util.StdinSpec
	switch cmd.Args().Len() {
	case 0:
	case 1:
		spec = cmd.Args().First()
	default:
		return fmt.Errorf("expected at most one input, got %d", cmd.Args().Len())
	}

	in, err := util.ParseInput(spec, m.StartingDir)
	if err != nil {
		return err
	}

	doc, err := in.Read(stdin(cmd))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	g, err := granularityFromCommand(cmd)
	if err != nil {
		return err
	}

	tokens := g.Tokenize(doc)
	log.Debugf("%d %s tokens", len(tokens), g)

	opts := output.OptionsFromCommand(cmd)
	return output.SliceDiceSpit(tokens, opts, stdout(cmd), func(w io.Writer) error {
		output.TokensWriter(tokens, opts, w)
		return nil
	})
}

// tokensCommandBuilder constructs the "tokens" subcommand.
func tokensCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DiffCommandBuilder{
		Name:      "tokens",
		Usage:     "show how a document is tokenized",
		UsageText: "tdiff tokens [DOC] [--granularity words|lines|chars] [flags]",
		Flags: []cli.Flag{
			NewGranularityFlag("tokens", meta.Config.Source),
		},
		Exclude: []string{"changed", "color", "filter", "width"},
		Action:  tokensCommandAction,
		Meta:    meta,
	}).Build()
}
