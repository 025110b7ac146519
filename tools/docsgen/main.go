// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/tdiff/internal/command"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Config holds the hand written parts of the docs that the command tree does
// not carry.
type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	var extras Config
	if data, err := os.ReadFile(filepath.Join(docs, "examples.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &extras); err != nil {
			panic(err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"tdiff"})
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: "command.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "command.1.tmpl", Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "tdiff-", Suffix: ".1"},
		{Template: "command.tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Prefix: "tdiff-", Suffix: ".md"},
	}

	version := getVersion()
	for _, sub := range buildSubcommands(app, extras) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", path)

			file, err := os.Create(path)
			if err != nil {
				panic(err)
			}
			if err := render(file, t.Template, metadata); err != nil {
				panic(err)
			}
			file.Close()
		}
	}
}

// buildSubcommands describes every subcommand of app. Descriptions, examples
// and notes are merged in from extras by command name.
func buildSubcommands(app *cli.Command, extras Config) []Subcommand {
	byID := map[string]Subcommand{}
	for _, s := range extras.Subcommands {
		byID[s.ID] = s
	}

	var subs []Subcommand
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}

		sub := Subcommand{
			ID:    cmd.Name,
			Short: cmd.Usage,
			Usage: cmd.UsageText,
		}

		for _, f := range cmd.Flags {
			if v, ok := f.(interface{ IsVisible() bool }); ok && !v.IsVisible() {
				continue
			}
			sub.Flags = append(sub.Flags, flagDoc(f))
		}

		if extra, ok := byID[cmd.Name]; ok {
			sub.Description = extra.Description
			sub.Examples = extra.Examples
			sub.Notes = extra.Notes
			sub.Flags = append(sub.Flags, extra.Flags...)
		}

		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})

		subs = append(subs, sub)
	}

	return subs
}

// flagDoc describes one flag. Short names are listed before long ones.
func flagDoc(f cli.Flag) Flag {
	names := f.Names()

	var short, long []string
	for _, n := range names {
		if len(n) == 1 {
			short = append(short, "-"+n)
		} else {
			long = append(long, "--"+n)
		}
	}

	doc := Flag{
		ID:     names[0],
		Syntax: strings.Join(append(short, long...), ", "),
	}
	if u, ok := f.(interface{ GetUsage() string }); ok {
		doc.Description = u.GetUsage()
	}
	if d, ok := f.(interface{ GetDefaultText() string }); ok {
		doc.Default = d.GetDefaultText()
	}
	return doc
}

// render executes the named embedded template.
func render(w io.Writer, name string, data TemplateData) error {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
