// Package main provides the bnf2bison CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "bnf2bison",
		Version: version,
		Usage:   "Convert ISO-style BNF grammars to bison",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (default: nearest .bnf2bison.yaml)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log each reduced rule and created list",
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			checkCommand(),
			inspectCommand(),
		},
	}
}

func main() {
	err := newApp().Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
