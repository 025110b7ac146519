// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/command"
)

func TestFlagDoc(t *testing.T) {
	f := &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output format"}

	doc := flagDoc(f)
	assert.Equal(t, "output", doc.ID)
	assert.Equal(t, "-o, --output", doc.Syntax)
	assert.Equal(t, "output format", doc.Description)
}

func TestBuildSubcommands(t *testing.T) {
	t.Setenv("TDIFF_CFG_FILE", "")

	app, err := command.InitApp(context.Background(), []string{"tdiff"})
	require.NoError(t, err)

	extras := Config{Subcommands: []Subcommand{{
		ID:       "split",
		Examples: []Example{{Command: "tdiff split a.txt b.txt", Description: "Compare two files"}},
	}}}

	subs := buildSubcommands(app, extras)

	byID := map[string]Subcommand{}
	for _, s := range subs {
		byID[s.ID] = s
	}
	require.Contains(t, byID, "split")
	require.Contains(t, byID, "unified")

	split := byID["split"]
	assert.Equal(t, "side by side line comparison", split.Short)
	assert.Len(t, split.Examples, 1)

	var syntaxes []string
	for i, f := range split.Flags {
		syntaxes = append(syntaxes, f.Syntax)
		if i > 0 {
			assert.LessOrEqual(t, split.Flags[i-1].ID, f.ID)
		}
	}
	assert.Contains(t, syntaxes, "-o, --output")
	assert.Contains(t, syntaxes, "--changed")
}

func TestRender(t *testing.T) {
	data := TemplateData{
		Subcommand: Subcommand{
			ID:       "split",
			Short:    "side by side line comparison",
			Usage:    "tdiff split LEFT RIGHT",
			Flags:    []Flag{{ID: "output", Syntax: "-o, --output", Description: "output format", Default: "text"}},
			Examples: []Example{{Command: "tdiff split a b", Description: "Compare"}},
		},
		Date:    "January 1, 2026",
		Version: "1.0.0",
		IDUpper: "SPLIT",
	}

	for _, name := range []string{"command.md.tmpl", "command.1.tmpl", "command.tldr.tmpl"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, render(&buf, name, data))
			assert.Contains(t, buf.String(), "tdiff split a b")
		})
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, "command.md.tmpl", data))
	assert.Contains(t, buf.String(), "| `-o, --output` | output format | text |")
}
