// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/differ"
	"github.com/tfctl/tdiff/internal/meta"
	"github.com/tfctl/tdiff/internal/output"
	"github.com/tfctl/tdiff/internal/util"
)

// DumpSchemaIfRequested writes the field paths of the provided type to the
// command's writer when --schema is set, and returns true if it handled the
// request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t, stdout(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr tdiff <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "tdiff", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// inputsFromCommand resolves the LEFT and RIGHT positional arguments against
// the starting directory.
func inputsFromCommand(cmd *cli.Command) (util.Input, util.Input, error) {
	if cmd.Args().Len() != 2 {
		return util.Input{}, util.Input{}, fmt.Errorf("expected LEFT and RIGHT inputs, got %d argument(s)", cmd.Args().Len())
	}
	return util.ParseInputs(cmd.Args().Get(0), cmd.Args().Get(1), GetMeta(cmd).StartingDir)
}

// requestFromCommand builds a differ.Request from the positional arguments
// and the view flags.
func requestFromCommand(cmd *cli.Command, mode differ.Mode) (differ.Request, error) {
	left, right, err := inputsFromCommand(cmd)
	if err != nil {
		return differ.Request{}, err
	}

	g, err := granularityFromCommand(cmd)
	if err != nil {
		return differ.Request{}, err
	}

	return differ.Request{
		Left:        left,
		Right:       right,
		Mode:        mode,
		Granularity: g,
	}, nil
}

// granularityFromCommand returns the --granularity value, or words when the
// command has no such flag.
func granularityFromCommand(cmd *cli.Command) (diff.Granularity, error) {
	g := cmd.String("granularity")
	if g == "" {
		return diff.Words, nil
	}
	return diff.ParseGranularity(g)
}

// modeFromCommand maps --unified to a differ.Mode.
func modeFromCommand(cmd *cli.Command) differ.Mode {
	if cmd.Bool("unified") {
		return differ.UnifiedMode
	}
	return differ.SplitMode
}

// optionsFromRequest reads the rendering flags and fills in the titles of
// both inputs.
func optionsFromRequest(cmd *cli.Command, req differ.Request) output.Options {
	opts := output.OptionsFromCommand(cmd)
	opts.LeftTitle = req.Left.Title
	opts.RightTitle = req.Right.Title
	return opts
}

// stdout returns the root command's writer, falling back to os.Stdout.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// stdin returns the root command's reader, falling back to os.Stdin.
func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
