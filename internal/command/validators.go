// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks combinations of flags that are valid on their
// own.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("query") != "" && c.String("output") != "json" && c.String("output") != "yaml" {
		return fmt.Errorf("--query requires --output json or yaml")
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func GranularityValidator(value any) error {
	s, _ := value.(string)
	if _, err := diff.ParseGranularity(s); err != nil {
		return fmt.Errorf("must be one of %v", diff.Granularities)
	}
	return nil
}

func WidthValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
