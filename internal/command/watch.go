// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/debounce"
	"github.com/tfctl/tdiff/internal/differ"
	"github.com/tfctl/tdiff/internal/meta"
)

// ErrWatchStdin is returned when watch is given stdin as an input.
var ErrWatchStdin = errors.New("watch needs two files, stdin cannot be watched")

// watchCommandAction is the action handler for the "watch" subcommand. It
// renders the comparison once and again every time either file changes,
// until interrupted.
func watchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "watch") {
		return nil
	}

	config.Config.Namespace = "watch"

	req, err := requestFromCommand(cmd, modeFromCommand(cmd))
	if err != nil {
		return err
	}
	if req.Left.IsStdin() || req.Right.IsStdin() {
		return ErrWatchStdin
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := &differ.Session{
		Request: req,
		Options: optionsFromRequest(cmd, req),
		Delta:   cmd.Bool("delta"),
		Out:     stdout(cmd),
	}

	if _, err := session.Refresh(ctx); err != nil {
		return err
	}

	delay := config.GetDurationMillis("debounce", debounce.DefaultDelay)
	log.Debugf("watching %s and %s, debounce %s", req.Left.Path, req.Right.Path, delay)

	return differ.Watch(ctx, []string{req.Left.Path, req.Right.Path}, delay, func() {
		if _, err := session.Refresh(ctx); err != nil {
			log.WithError(err).Error("refresh failed")
		}
	})
}

// watchCommandBuilder constructs the "watch" subcommand.
func watchCommandBuilder(meta meta.Meta) *cli.Command {
	return (&DiffCommandBuilder{
		Name:      "watch",
		Usage:     "re-render the comparison whenever either file changes",
		UsageText: "tdiff watch LEFT RIGHT [--unified] [--delta] [flags]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "delta",
				Aliases: []string{"d"},
				Usage:   "print only what changed since the previous refresh",
				Value:   false,
			},
			newUnifiedFlag(),
			NewGranularityFlag("watch", meta.Config.Source),
		},
		Action: watchCommandAction,
		Meta:   meta,
	}).Build()
}
