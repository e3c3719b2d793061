package main

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/miniC/lib/frontend"
	"github.com/vyPal/miniC/lib/parser"
	"github.com/vyPal/miniC/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "Parse a miniC file and print its syntax tree",
		Category:  "compile",
		ArgsUsage: "<file>",
		Flags:     parseFlags(),
		Action:    parse,
	})
}

func parseFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "The output format: tree, json or yaml",
		},
		&cli.StringFlag{
			Name:    "input-str",
			Aliases: []string{"s"},
			Usage:   "Parse a string instead of a file",
		},
		&cli.BoolFlag{
			Name:    "recover",
			Aliases: []string{"r"},
			Usage:   "Keep parsing after an error to report as many errors as possible",
		},
		&cli.IntFlag{
			Name:  "max-errors",
			Usage: "Stop after this many errors when recovering",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Print diagnostics without colors",
		},
	}
}

// applyFlags overrides configuration values with the flags given on the
// command line.
func applyFlags(c *cli.Context, conf *project.Config) error {
	if c.IsSet("format") {
		conf.Output.Format = c.String("format")
	}
	if c.IsSet("recover") {
		conf.Parser.Recover = c.Bool("recover")
	}
	if c.IsSet("max-errors") {
		conf.Parser.MaxErrors = c.Int("max-errors")
	}
	if c.Bool("no-color") {
		conf.Diagnostics.Color = project.ColorNever
	}
	return conf.Validate()
}

func parse(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	conf := e.conf
	if err := applyFlags(c, &conf); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	filename, src, err := readInput(c)
	if err != nil {
		return err
	}

	fe := &frontend.Frontend{Parser: conf.ParserConfig(), Log: e.log}
	prog, err := fe.Run(filename, src)
	if err != nil {
		return reportErrors(c, conf, filename, src, err)
	}

	switch conf.Output.Format {
	case project.FormatJSON:
		err = parser.FprintJSON(c.App.Writer, prog)
	case project.FormatYAML:
		err = parser.FprintYAML(c.App.Writer, prog)
	default:
		err = parser.Fprint(c.App.Writer, prog)
	}
	if err != nil {
		return cli.Exit(color.RedString("Error encoding syntax tree: %s", err), 1)
	}
	return nil
}
