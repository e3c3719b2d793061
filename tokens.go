package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/miniC/lib/diag"
	"github.com/vyPal/miniC/lib/frontend"
	"github.com/vyPal/miniC/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "tokens",
		Aliases:   []string{"t"},
		Usage:     "List the tokens of a miniC file",
		Category:  "compile",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Tokenize a string instead of a file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Print diagnostics without colors",
			},
		},
		Action: tokens,
	})
}

func tokens(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	if c.Bool("no-color") {
		e.conf.Diagnostics.Color = project.ColorNever
	}

	filename, src, err := readInput(c)
	if err != nil {
		return err
	}

	fe := &frontend.Frontend{Log: e.log}
	toks, err := fe.Tokens(filename, src)
	if err != nil {
		return reportErrors(c, e.conf, filename, src, err)
	}

	source := diag.NewSource(src)
	for _, t := range toks {
		line, col := source.LineCol(t.Span.Start)
		if _, err := fmt.Fprintf(c.App.Writer, "%d:%d %s %s\n", line, col, t.Kind, t.Text); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
	}
	return nil
}
