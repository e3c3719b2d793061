package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/miniC/lib/diag"
	"github.com/vyPal/miniC/lib/project"
	"github.com/vyPal/miniC/lib/report"
)

var commands []*cli.Command

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:                   "minic",
		Usage:                  "Tokenize and parse miniC programs",
		ArgsUsage:              "<file>",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Reader:                 in,
		Writer:                 out,
		ErrWriter:              errOut,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log what each phase does",
			},
		}, parseFlags()...),
		Action:   parse,
		Commands: commands,
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "The path to the config file. Defaults to minic.yaml, minic.yml or minic.toml in the working directory",
	}
}

// env is the state shared by all commands: the effective configuration and
// the logger.
type env struct {
	conf project.Config
	log  *logrus.Logger
}

func setup(c *cli.Context) (*env, error) {
	log := logrus.New()
	log.Out = c.App.ErrWriter
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	var (
		conf project.Config
		path = c.String("config")
		err  error
	)
	if path != "" {
		conf, err = project.LoadFile(path)
	} else {
		conf, path, err = project.Load(".")
	}
	if err != nil {
		return nil, cli.Exit(color.RedString("Error loading config: %s", err), 1)
	}

	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	if c.Bool("verbose") {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	if path != "" {
		log.WithField("path", path).Debug("loaded config")
	}

	return &env{conf: conf, log: log}, nil
}

// readInput returns the source named by the first argument, the --input-str
// flag, or standard input for "-".
func readInput(c *cli.Context) (filename, src string, err error) {
	if c.IsSet("input-str") {
		return "<input>", c.String("input-str"), nil
	}

	filename = c.Args().First()
	var data []byte
	switch filename {
	case "":
		return "", "", cli.Exit(color.RedString("Error: No file specified"), 1)
	case "-":
		filename = "<stdin>"
		data, err = io.ReadAll(c.App.Reader)
	default:
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", "", cli.Exit(color.RedString("Error reading %s: %s", filename, err), 1)
	}
	return filename, string(data), nil
}

// reportErrors renders front-end diagnostics to the error stream. Any other
// error is returned as is.
func reportErrors(c *cli.Context, conf project.Config, filename, src string, err error) error {
	var list diag.List
	if !errors.As(err, &list) {
		var d diag.Error
		if !errors.As(err, &d) {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		list = diag.List{d}
	}

	r := report.New(c.App.ErrWriter, filename, src, report.Options{
		Color: conf.UseColor(isTerminal(c.App.ErrWriter)),
	})
	if rerr := r.RenderAll(list); rerr != nil {
		return cli.Exit(color.RedString("Error writing diagnostics: %s", rerr), 1)
	}
	return cli.Exit("", 1)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
