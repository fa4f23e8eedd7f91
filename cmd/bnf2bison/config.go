package main

import (
	"errors"
	"path/filepath"

	"github.com/rlch/bnf"
	"github.com/urfave/cli/v3"
)

// loadConfig returns the config named by --config, else the nearest config
// file above the input, else an empty config.
func loadConfig(cmd *cli.Command, input string) (*bnf.Config, error) {
	if path := cmd.String("config"); path != "" {
		return bnf.LoadConfigFile(path)
	}

	dir := "."
	if input != "" && input != stdinName {
		dir = filepath.Dir(input)
	}

	cfg, err := bnf.LoadConfig(dir)
	if errors.Is(err, bnf.ErrConfigNotFound) {
		return &bnf.Config{}, nil
	}

	return cfg, err
}
