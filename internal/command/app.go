// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup. Relative inputs are resolved against it.
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the tdiff
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine; every getter has a default.
	cfg, _ := config.Load(ns) //nolint
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "tdiff",
		Usage: "Text Diff",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		liveCommandBuilder(meta),
		splitCommandBuilder(meta),
		statsCommandBuilder(meta),
		tokensCommandBuilder(meta),
		unifiedCommandBuilder(meta),
		watchCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
