package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/miniC/lib/grammar"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "grammar",
		Usage:    "Print the EBNF grammar of miniC, or check files against it",
		Category: "compile",
		Description: "Without flags the grammar is printed. With --check the given file is " +
			"validated by the declarative reference grammar instead of the miniC parser. " +
			"Useful for debugging the parser.",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Check the file against the reference grammar",
			},
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Check a string instead of a file",
			},
		},
		Action: printGrammar,
	})
}

func printGrammar(c *cli.Context) error {
	if !c.Bool("check") {
		fmt.Fprintln(c.App.Writer, grammar.EBNF())
		return nil
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	filename, src, err := readInput(c)
	if err != nil {
		return err
	}
	if err := grammar.Check(filename, src); err != nil {
		return reportErrors(c, e.conf, filename, src, err)
	}
	e.log.WithField("file", filename).Debug("accepted by reference grammar")
	fmt.Fprintln(c.App.Writer, color.GreenString("%s: ok", filename))
	return nil
}
