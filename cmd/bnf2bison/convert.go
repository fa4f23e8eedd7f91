package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rlch/bnf"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var (
	ErrOutOfDate    = errors.New("generated grammar is out of date")
	ErrNoOutputPath = errors.New("--check needs an output file (use --output or the config)")
	ErrUnknownStart = errors.New("start symbol is not defined")
)

const (
	stdinName       = "-"
	filePermissions = 0o600
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a BNF grammar to a bison grammar",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the bison grammar to this file (overrides config)",
			},
			&cli.StringFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "start symbol (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "check that the output file is up to date (exit 1 if not)",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "display a diff against the output file instead of writing it",
			},
		},
		Action: runConvert,
	}
}

func runConvert(_ context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		input = stdinName
	}

	cfg, err := loadConfig(cmd, input)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := commandLogger(cmd)

	defer func() {
		_ = logger.Sync()
	}()

	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	g, err := bnf.ConvertNamed(input, data, append(cfg.EngineOptions(), bnf.WithLogger(logger))...)
	if err != nil {
		return err
	}

	for _, name := range g.Undefined() {
		logger.Warn("Nonterminal is referenced but never defined", zap.String("rule", name))
	}

	opts := cfg.RenderOptions(input)
	if start := cmd.String("start"); start != "" {
		opts.Start = start
	}

	if opts.Start != "" && !g.Has(bnf.NormalizeName(opts.Start)) {
		return fmt.Errorf("%w: %q", ErrUnknownStart, opts.Start)
	}

	rendered := bnf.Render(g, opts)

	output := cmd.String("output")
	if output == "" {
		output = cfg.Output
	}

	out := cmd.Root().Writer
	styles := stylesFor(out)

	switch {
	case cmd.Bool("diff"):
		existing, err := readExisting(output)
		if err != nil {
			return err
		}

		printDiff(out, styles, output, existing, rendered)

		return nil

	case cmd.Bool("check"):
		if output == "" {
			return ErrNoOutputPath
		}

		existing, err := readExisting(output)
		if err != nil {
			return err
		}

		if existing != rendered {
			return fmt.Errorf("%w: %s", ErrOutOfDate, output)
		}

		return nil

	case output == "":
		_, err = io.WriteString(out, rendered)

		return err

	default:
		err = os.WriteFile(output, []byte(rendered), filePermissions)
		if err != nil {
			return err
		}

		logger.Info("Wrote bison grammar",
			zap.String("path", output),
			zap.Int("nonterminals", g.Len()))

		return nil
	}
}

func readInput(cmd *cli.Command, input string) ([]byte, error) {
	if input == stdinName {
		data, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	return os.ReadFile(input) //#nosec G304 -- paths come from user args
}

// readExisting returns the current content of path, or "" when it does not
// exist yet.
func readExisting(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path) //#nosec G304 -- paths come from user args or config
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	return string(data), err
}
