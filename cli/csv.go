package cli

// This file contains the csv subcommands for working with delimited files.

import (
	"fmt"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/runkit/runkit/csvio"
)

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case "tab", "\\t", "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character or 'tab', got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func (a *App) csvConvert(ctx *cli.Context) error {
	in := ctx.String("in")
	out := ctx.String("out")

	inDelim, err := parseDelimiter(ctx.String("in-delimiter"))
	if err != nil {
		return err
	}
	outDelim, err := parseDelimiter(ctx.String("out-delimiter"))
	if err != nil {
		return err
	}

	rows, headers, err := csvio.ReadFileHeaders(in, csvio.WithDelimiter(inDelim))
	if err != nil {
		return err
	}
	if headers == nil {
		return fmt.Errorf("%s is empty, nothing to convert", in)
	}

	path, err := csvio.WriteFile(out, rows,
		csvio.WithDelimiter(outDelim),
		csvio.WithHeaders(headers))
	if err != nil {
		return err
	}

	a.logger.Info().
		Str("in", in).
		Str("out", path).
		Int("rows", len(rows)).
		Msg("Converted delimited file")
	return nil
}
