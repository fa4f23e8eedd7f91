package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rlch/bnf/analysis"
	"github.com/urfave/cli/v3"
)

var (
	ErrNoBNFFiles  = errors.New("no .bnf files found")
	ErrCheckFailed = errors.New("some grammars failed to check")
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check BNF files for syntax errors and grammar problems",
		ArgsUsage: "[files or directories...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "treat warnings as failures",
			},
		},
		Action: runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return ErrNoBNFFiles
	}

	out := cmd.Root().Writer
	styles := stylesFor(out)
	strict := cmd.Bool("strict")

	shown := analysis.SeverityWarning
	if cmd.Bool("verbose") {
		shown = analysis.SeverityHint
	}

	failed := 0

	for _, file := range files {
		result, err := checkFile(cmd, file)
		if err != nil {
			failed++

			_, _ = fmt.Fprintf(out, "%s %s\n  %s\n",
				styles.Fail.Render(styles.SymbolFail), styles.Path.Render(file), err)

			continue
		}

		symbol, style := styles.SymbolPass, styles.Pass

		switch {
		case result.HasErrors(), strict && result.Count(analysis.SeverityWarning) > 0:
			failed++
			symbol, style = styles.SymbolFail, styles.Fail
		case result.Count(analysis.SeverityWarning) > 0:
			symbol, style = styles.SymbolWarn, styles.Warn
		}

		_, _ = fmt.Fprintf(out, "%s %s\n", style.Render(symbol), styles.Path.Render(file))

		for _, d := range result.Diagnostics {
			if d.Severity > shown {
				continue
			}

			_, _ = fmt.Fprintf(out, "  %s\n", styles.Dim.Render(d.String()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(files))
	}

	return nil
}

// checkFile runs the grammar analyzer over file with the settings of the
// nearest config.
func checkFile(cmd *cli.Command, file string) (*analysis.AnalyzedFile, error) {
	data, err := os.ReadFile(file) //#nosec G304 -- paths come from user args
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, file)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	analyzer := analysis.NewAnalyzer(cfg.EngineOptions()...)

	return analyzer.Analyze(file, data), nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && strings.HasSuffix(path, ".bnf") {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
