// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/output"
	"github.com/tfctl/tdiff/internal/util"
)

// Mode selects which view a comparison produces.
type Mode int

const (
	SplitMode Mode = iota
	UnifiedMode
)

func (m Mode) String() string {
	if m == UnifiedMode {
		return "unified"
	}
	return "split"
}

// Request describes one comparison.
type Request struct {
	Left        util.Input
	Right       util.Input
	Mode        Mode
	Granularity diff.Granularity
}

// Result holds the view a Request produced. Exactly one of Split and Unified
// is set.
type Result struct {
	Mode    Mode
	Split   *diff.SplitView
	Unified *diff.UnifiedView
}

// Stats returns the stats of whichever view is set.
func (r Result) Stats() diff.Stats {
	if r.Unified != nil {
		return r.Unified.Stats
	}
	if r.Split != nil {
		return r.Split.Stats
	}
	return diff.Stats{}
}

// Compute reads both inputs and builds the requested view. stdin is used for
// an input spec of "-".
func Compute(ctx context.Context, req Request, stdin io.Reader) (Result, error) {
	log.Debugf(">> Compute(%s, %s)", req.Left.Title, req.Right.Title)

	left, err := req.Left.Read(stdin)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read left input: %w", err)
	}

	right, err := req.Right.Read(stdin)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read right input: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Debugf("sizes: %s %s", humanize.Bytes(uint64(len(left))), humanize.Bytes(uint64(len(right))))

	return Documents(left, right, req.Mode, req.Granularity), nil
}

// Documents builds the view for two in-memory documents.
func Documents(left, right string, mode Mode, g diff.Granularity) Result {
	if mode == UnifiedMode {
		v := diff.BuildUnifiedView(left, right, g)
		return Result{Mode: mode, Unified: &v}
	}
	v := diff.BuildSplitView(left, right)
	return Result{Mode: mode, Split: &v}
}

// Render filters res per opts and writes it in the selected format.
func Render(res Result, opts output.Options, w io.Writer) error {
	res = Filter(res, opts)
	if res.Unified != nil {
		v := *res.Unified
		return output.SliceDiceSpit(v, opts, w, func(w io.Writer) error {
			output.UnifiedWriter(v, opts, w)
			return nil
		})
	}

	if res.Split == nil {
		return nil
	}
	v := *res.Split
	return output.SliceDiceSpit(v, opts, w, func(w io.Writer) error {
		output.SplitWriter(v, opts, w)
		return nil
	})
}

// Filter applies --changed and --filter to whichever view res holds. The
// views of res are not modified.
func Filter(res Result, opts output.Options) Result {
	if res.Unified != nil {
		v := output.FilterUnified(*res.Unified, opts)
		res.Unified = &v
	}
	if res.Split != nil {
		v := output.FilterSplit(*res.Split, opts)
		res.Split = &v
	}
	return res
}

// Diff computes the comparison described by req and renders it to w.
func Diff(ctx context.Context, req Request, opts output.Options, stdin io.Reader, w io.Writer) (Result, error) {
	res, err := Compute(ctx, req, stdin)
	if err != nil {
		return Result{}, err
	}
	return res, Render(res, opts, w)
}

// Export returns the JSON form of the view held by res.
func Export(res Result) ([]byte, error) {
	var v any = res.Split
	if res.Unified != nil {
		v = res.Unified
	}
	return json.Marshal(v)
}

// Delta compares two exported results structurally. It reports whether they
// differ and, when color or plain text is wanted, the formatted delta.
func Delta(prev, next []byte, color bool) (string, bool, error) {
	if len(prev) == 0 || len(next) == 0 {
		return "", len(prev) != len(next), nil
	}

	differ := gojsondiff.New()

	delta, err := differ.Compare(prev, next)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare results: %w", err)
	}

	if !delta.Modified() {
		return "", false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(prev, &jdoc); err != nil {
		return "", true, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return "", true, err
	}

	return diffString, true, nil
}
