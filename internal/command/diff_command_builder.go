// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/meta"
)

// DiffCommandBuilder is a helper that constructs a cli.Command for the
// comparison subcommands (split, unified, stats, tokens, watch) using a
// consistent pattern. The builder automatically wires metadata, adds
// tldr/schema flags, applies global flags, and sets up validators.
type DiffCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	// Exclude names global flags the command has no use for.
	Exclude []string
	Action  func(context.Context, *cli.Command) error
	Meta    meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (dcb *DiffCommandBuilder) Build() *cli.Command {
	var globals []cli.Flag
	for _, flag := range NewGlobalFlags(dcb.Name, dcb.Meta.Config.Source) {
		if !slices.Contains(dcb.Exclude, flag.Names()[0]) {
			globals = append(globals, flag)
		}
	}

	return &cli.Command{
		Name:      dcb.Name,
		Usage:     dcb.Usage,
		UsageText: dcb.UsageText,
		Metadata: map[string]any{
			"meta": dcb.Meta,
		},
		Flags: append(dcb.Flags, append([]cli.Flag{
			newTldrFlag(),
			newSchemaFlag(),
		}, globals...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: dcb.Action,
	}
}
