package bnf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no config file exists in dir or any parent.
var ErrConfigNotFound = errors.New("no bnf2bison config file found")

// Config represents the .bnf2bison.yaml (or .toml) configuration file.
type Config struct {
	// Start symbol for the generated grammar; defaults to the first rule.
	Start string `yaml:"start,omitempty" toml:"start"`

	// Per-pattern start symbols (glob pattern -> start symbol)
	// e.g., "gql/*.bnf": "GQL-program"
	Files map[string]string `yaml:"files,omitempty" toml:"files"`

	// Output path for the bison grammar; stdout when empty.
	Output string `yaml:"output,omitempty" toml:"output"`

	// Prologue is copied verbatim to the top of the bison file.
	Prologue string `yaml:"prologue,omitempty" toml:"prologue"`

	OmitTokens   bool `yaml:"omit_tokens,omitempty" toml:"omit_tokens"`
	OmitComments bool `yaml:"omit_comments,omitempty" toml:"omit_comments"`

	// ListSuffix names synthesized repetition lists (default "_list").
	ListSuffix string `yaml:"list_suffix,omitempty" toml:"list_suffix"`

	// MaxAlternatives bounds the expansion of any one subexpression; 0 is unlimited.
	MaxAlternatives int `yaml:"max_alternatives,omitempty" toml:"max_alternatives"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{
	".bnf2bison.yaml", ".bnf2bison.yml", ".bnf2bison.toml",
	"bnf2bison.yaml", "bnf2bison.yml", "bnf2bison.toml",
}

// LoadConfig finds and loads the nearest config file walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path. Files ending in .toml
// are decoded as TOML, everything else as YAML.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}

	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// StartFor returns the start symbol for a given grammar file path.
// It checks file-specific patterns first, then falls back to the default.
func (c *Config) StartFor(filePath string) string {
	for pattern, start := range c.Files {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return start
		}
	}

	return c.Start
}

// EngineOptions returns the engine settings carried by the config.
func (c *Config) EngineOptions() []Option {
	return []Option{
		WithListSuffix(c.ListSuffix),
		WithMaxAlternatives(c.MaxAlternatives),
	}
}

// RenderOptions returns the bison output settings for filePath.
func (c *Config) RenderOptions(filePath string) RenderOptions {
	return RenderOptions{
		Start:        c.StartFor(filePath),
		Prologue:     c.Prologue,
		OmitTokens:   c.OmitTokens,
		OmitComments: c.OmitComments,
	}
}
