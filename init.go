package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/miniC/lib/project"
	"github.com/vyPal/miniC/util"
)

const sampleSource = `// A small miniC program.
int square(int n) {
	return n * n;
}

int main() {
	int x;
	x = square(3);
	if (x > 5) return x; else return 0;
}
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a miniC config file and an example program",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file without asking",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Use the default configuration without asking",
			},
			&cli.BoolFlag{
				Name:  "toml",
				Usage: "Write minic.toml instead of minic.yaml",
			},
		},
		Action: initProject,
	})
}

func prompter(c *cli.Context) *util.Prompter {
	if c.App.Reader == os.Stdin {
		return util.Std
	}
	return &util.Prompter{In: c.App.Reader, Out: c.App.Writer}
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return cli.Exit(color.RedString("Error creating directory: %s", err), 1)
		}
		fmt.Fprintln(c.App.Writer, "Created directory:", rootDir)
	}

	mainFile := filepath.Join(rootDir, "main.mc")
	if _, err := os.Stat(mainFile); os.IsNotExist(err) {
		if err := os.WriteFile(mainFile, []byte(sampleSource), 0644); err != nil {
			return cli.Exit(color.RedString("Error creating %s: %s", mainFile, err), 1)
		}
		fmt.Fprintln(c.App.Writer, "Created file:", mainFile)
	}

	conf := project.Default()
	p := prompter(c)
	if !c.Bool("yes") && !p.YN("Use default configuration?", true) {
		conf.Output.Format = p.String("Output format (tree, json, yaml)", conf.Output.Format)
		conf.Diagnostics.Color = p.String("Colored diagnostics (auto, always, never)", conf.Diagnostics.Color)
		conf.Parser.Recover = p.YN("Recover from syntax errors?", conf.Parser.Recover)
		conf.Output.Format = strings.ToLower(conf.Output.Format)
		conf.Diagnostics.Color = strings.ToLower(conf.Diagnostics.Color)
		if err := conf.Validate(); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
	}

	name := "minic.yaml"
	if c.Bool("toml") {
		name = "minic.toml"
	}
	confFile := filepath.Join(rootDir, name)
	if err := conf.Save(confFile, c.Bool("force")); err != nil {
		return cli.Exit(color.RedString("Error saving config: %s", err), 1)
	}
	fmt.Fprintln(c.App.Writer, "Wrote config:", confFile)
	return nil
}
