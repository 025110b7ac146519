// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/filters"
)

// ErrNoMatch is returned when --query selects nothing.
var ErrNoMatch = errors.New("query matched nothing")

// SliceDiceSpit renders v in the format selected by opts.Output. The text
// callback renders the human readable form and is only invoked for text
// output. Output is written to w. If w is nil, os.Stdout is used.
func SliceDiceSpit(v any, opts Options, w io.Writer, text func(io.Writer) error) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Output == "" || opts.Output == "text" {
		return text(w)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	// If raw, just dump it and go home.
	if opts.Output == "raw" {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	if opts.Query != "" {
		result := gjson.GetBytes(raw, opts.Query)
		if !result.Exists() {
			return fmt.Errorf("%w: %s", ErrNoMatch, opts.Query)
		}
		raw = []byte(result.Raw)
	}

	switch opts.Output {
	case "json":
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("indent json: %w", err)
		}
		buf.WriteByte('\n')
		_, err = w.Write(buf.Bytes())
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(gjson.ParseBytes(raw).Value())
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Output)
	}
}

// FilterSplit applies --changed and --filter to the rows of v. Stats are
// recounted from the rows that are kept.
func FilterSplit(v diff.SplitView, opts Options) diff.SplitView {
	if opts.Changed {
		v.Rows = v.Changed()
	}
	v.Rows = filters.Apply(v.Rows, opts.Filter)
	v.Stats = diff.ComputeStats(v.Edits())
	log.Debugf("FilterSplit: %d rows kept", len(v.Rows))
	return v
}

// FilterUnified applies --changed and --filter to the edits and runs of v.
// Stats are recounted from the edits that are kept.
func FilterUnified(v diff.UnifiedView, opts Options) diff.UnifiedView {
	spec := opts.Filter
	if opts.Changed {
		spec = strings.Trim(spec+",type!=unchanged", ",")
	}
	v.Edits = filters.Apply(v.Edits, spec)
	v.Runs = filters.Apply(v.Runs, spec)
	v.Stats = diff.ComputeStats(v.Edits)
	return v
}

// StatsLine summarizes stats in a single line. unit names what was counted.
func StatsLine(s diff.Stats, unit string) string {
	return fmt.Sprintf("%s added, %s removed, %s unchanged %s",
		humanize.Comma(int64(s.Added)),
		humanize.Comma(int64(s.Removed)),
		humanize.Comma(int64(s.Unchanged)),
		unit)
}

// palette holds the styles used for --color output.
type palette struct {
	enabled  bool
	title    color.Color
	added    color.Color
	removed  color.Color
	modified color.Color
}

func newPalette(enabled bool) palette {
	p := palette{enabled: enabled}
	if enabled {
		p.title, p.added, p.removed, p.modified = getColors("colors")
	}
	return p
}

// style returns the base style for op.
func (p palette) style(op diff.Op) lipgloss.Style {
	style := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	switch op {
	case diff.Added:
		style = style.Foreground(p.added)
	case diff.Removed:
		style = style.Foreground(p.removed).Strikethrough(true)
	}
	return style
}

// mark highlights s as op. Without color the wdiff markers [-removed-] and
// {+added+} are used.
func (p palette) mark(op diff.Op, s string) string {
	if s == "" || op == diff.Unchanged {
		return s
	}

	if !p.enabled {
		switch op {
		case diff.Added:
			return "{+" + s + "+}"
		default:
			return "[-" + s + "-]"
		}
	}

	return p.paint(p.style(op), s)
}

// paint renders each line of s separately so lipgloss does not pad lines to a
// common width.
func (p palette) paint(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// getColors returns configured color values for diff rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (title, added, removed, modified color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	title = resolveColor(key+".title", "#b08800", "#f6be00")
	added = resolveColor(key+".added", "#116329", "#3fb950")
	removed = resolveColor(key+".removed", "#a40e26", "#f85149")
	modified = resolveColor(key+".modified", "#0088a0", "#00c8f0")

	return
}
