// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/cacheutil"
	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/debounce"
	"github.com/tfctl/tdiff/internal/differ"
	"github.com/tfctl/tdiff/internal/meta"
	"github.com/tfctl/tdiff/internal/output"
)

// ErrLiveStdin is returned when live is given stdin as an input. The
// terminal is needed for the editor.
var ErrLiveStdin = errors.New("live reads the terminal, stdin cannot be an input")

// liveCommandAction is the action handler for the "live" subcommand. It opens
// the editor seeded from files or a saved draft and saves the draft on exit.
func liveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "live") {
		return nil
	}

	config.Config.Namespace = "live"

	opts, key, err := liveOptionsFromCommand(cmd)
	if err != nil {
		return err
	}

	final, err := differ.Live(opts)
	if err != nil {
		return fmt.Errorf("live editor failed: %w", err)
	}

	if err := cacheutil.SaveDraft(key, final.Left, final.Right); err != nil {
		log.WithError(err).Warn("failed to save draft")
	}

	fmt.Fprintln(stdout(cmd), liveSummary(final))
	return nil
}

// liveSummary is the stats line printed when the editor closes. It uses the
// mode and granularity the session ended in.
func liveSummary(final differ.LiveOptions) string {
	res := differ.Documents(final.Left, final.Right, final.Mode, final.Granularity)
	return output.StatsLine(res.Stats(), unitOf(final))
}

// liveOptionsFromCommand seeds the editor from the optional LEFT and RIGHT
// files and, with --resume, from the draft saved for the same pair. It also
// returns the draft key for the pair.
func liveOptionsFromCommand(cmd *cli.Command) (differ.LiveOptions, string, error) {
	opts := differ.LiveOptions{
		Mode:  modeFromCommand(cmd),
		Delay: config.GetDurationMillis("debounce", debounce.DefaultDelay),
	}

	g, err := granularityFromCommand(cmd)
	if err != nil {
		return opts, "", err
	}
	opts.Granularity = g

	var key string
	switch cmd.Args().Len() {
	case 0:
		key = cacheutil.DraftKey("", "")

	case 2:
		left, right, err := inputsFromCommand(cmd)
		if err != nil {
			return opts, "", err
		}
		if left.IsStdin() || right.IsStdin() {
			return opts, "", ErrLiveStdin
		}

		if opts.Left, err = left.Read(nil); err != nil {
			return opts, "", fmt.Errorf("failed to read left input: %w", err)
		}
		if opts.Right, err = right.Read(nil); err != nil {
			return opts, "", fmt.Errorf("failed to read right input: %w", err)
		}
		opts.LeftTitle, opts.RightTitle = left.Title, right.Title
		key = cacheutil.DraftKey(left.Path, right.Path)

	default:
		return opts, "", fmt.Errorf("expected no inputs or LEFT and RIGHT, got %d argument(s)", cmd.Args().Len())
	}

	if cmd.Bool("resume") {
		if d, ok := cacheutil.LoadDraft(key); ok {
			log.Debugf("resuming draft saved %s", d.Saved)
			opts.Left, opts.Right = d.Left, d.Right
		}
	}

	return opts, key, nil
}

// unitOf names what the live stats count.
func unitOf(opts differ.LiveOptions) string {
	if opts.Mode == differ.UnifiedMode {
		return opts.Granularity.String()
	}
	return "lines"
}

// liveCommandBuilder constructs the "live" subcommand.
func liveCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "live",
		Usage:     "interactive editor with a live comparison",
		UsageText: "tdiff live [LEFT RIGHT] [--resume] [--unified] [--granularity words|lines|chars]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "resume",
				Aliases: []string{"r"},
				Usage:   "resume the draft saved for the same inputs",
				Value:   false,
			},
			newTldrFlag(),
			newUnifiedFlag(),
			NewGranularityFlag("live", meta.Config.Source),
		},
		Action: liveCommandAction,
	}
}
