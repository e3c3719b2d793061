// Package project loads and writes the minic configuration file.
package project

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vyPal/miniC/lib/parser"
	"github.com/vyPal/miniC/util"
)

// FileNames are the configuration files looked up in a directory, in order.
var FileNames = []string{"minic.yaml", "minic.yml", "minic.toml"}

// Output formats for the syntax tree.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes for diagnostics.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Diagnostics Diagnostics `yaml:"diagnostics" toml:"diagnostics"`
	Parser      Parser      `yaml:"parser" toml:"parser"`
	Output      Output      `yaml:"output" toml:"output"`
	Log         Log         `yaml:"log" toml:"log"`
}

type Diagnostics struct {
	Color string `yaml:"color" toml:"color"`
}

type Parser struct {
	Recover   bool `yaml:"recover" toml:"recover"`
	MaxErrors int  `yaml:"max_errors" toml:"max_errors"`
}

type Output struct {
	Format string `yaml:"format" toml:"format"`
}

type Log struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.CreateDefault()
	return c
}

func (c *Config) CreateDefault() {
	c.Diagnostics.Color = ColorAuto
	c.Parser.Recover = false
	c.Parser.MaxErrors = parser.DefaultMaxErrors
	c.Output.Format = FormatTree
	c.Log.Level = logrus.WarnLevel.String()
}

// ParserConfig converts the parser section for the grammar engine.
func (c Config) ParserConfig() parser.Config {
	return parser.Config{Recover: c.Parser.Recover, MaxErrors: c.Parser.MaxErrors}
}

// UseColor resolves the color mode. terminal tells whether diagnostics go to
// a terminal.
func (c Config) UseColor(terminal bool) bool {
	switch c.Diagnostics.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

func (c Config) Validate() error {
	switch c.Diagnostics.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("diagnostics.color: unknown mode %q", c.Diagnostics.Color)
	}
	switch c.Output.Format {
	case FormatTree, FormatJSON, FormatYAML:
	default:
		return errors.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if c.Parser.MaxErrors < 0 {
		return errors.Errorf("parser.max_errors: must not be negative, got %d", c.Parser.MaxErrors)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// Find returns the path of the first configuration file in dir, or an
// empty string if there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the configuration file in dir. Without a file the defaults are
// returned with an empty path.
func Load(dir string) (Config, string, error) {
	p := Find(dir)
	if p == "" {
		return Default(), "", nil
	}
	c, err := LoadFile(p)
	return c, p, err
}

// LoadFile reads a YAML or TOML file, chosen by extension, over the
// defaults. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return Config{}, errors.Wrapf(err, "parsing %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Errorf("parsing %s: unknown key %s", path, undecoded[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Wrapf(err, "parsing %s", path)
		}
	default:
		return Config{}, errors.Errorf("%s: unsupported config format", path)
	}

	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return c, nil
}

// confirm asks whether an existing file may be replaced.
var confirm = util.PromptYN

// Save writes c to path in the format given by its extension. An existing
// file is replaced when overwrite is set or the user agrees to it; declining
// leaves the file alone and returns nil.
func (c *Config) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if !overwrite && !confirm(path+" already exists. Overwrite?", false) {
			return nil
		}
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.Wrap(err, "encoding config")
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return errors.Wrap(err, "encoding config")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "encoding config")
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
