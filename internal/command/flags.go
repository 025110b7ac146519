// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/config"
)

// Flags carry parse state, so each command gets its own instances.

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

func newUnifiedFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "unified",
		Aliases: []string{"u"},
		Usage:   "use the unified view instead of the split view",
		Value:   false,
	}
}

// NewGlobalFlags returns the rendering flags shared by the diff commands.
// params[0] is the command namespace and params[1] the config file. When
// both are given, string flags also read their value from the config file.
// The default of --color comes from colors.enabled.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	color, _ := config.GetBool("colors.enabled", false)

	strs := []*cli.StringFlag{
		{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to rows or runs",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TDIFF_FILTER"),
			),
		},
		{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TDIFF_OUTPUT"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "gjson query applied to json and yaml output",
		},
	}

	for _, flag := range strs {
		if len(params) == 2 && params[1] != "" {
			flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
		}
		flags = append(flags, flag)
	}

	flags = append(flags,
		&cli.BoolFlag{
			Name:  "changed",
			Usage: "hide unchanged rows and runs",
			Value: false,
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TDIFF_COLOR"),
			),
			Value: color,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"W"},
			Usage:   "table width, 0 for the terminal width",
			Value:   0,
			Validator: func(value int) error {
				return FlagValidators(value, WidthValidator)
			},
		},
	)

	return
}

// NewGranularityFlag constructs the --granularity flag, optionally namespaced
// to a command and config file. params[1] is the config file.
func NewGranularityFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "granularity",
		Aliases: []string{"g"},
		Usage:   "token granularity: words, lines or chars",
		Value:   "words",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TDIFF_GRANULARITY"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, GranularityValidator)
		},
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
