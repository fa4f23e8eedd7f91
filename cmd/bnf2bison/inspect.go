package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rlch/bnf"
	"github.com/urfave/cli/v3"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "List the nonterminals of a converted grammar",
		ArgsUsage: "[file]",
		Description: `The --filter expression sees these variables for every nonterminal:
name, synthetic, alternatives, empty, nullable and comments.

Example: bnf2bison inspect --filter 'alternatives > 10 && !synthetic' gql.bnf`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "only list nonterminals matching this expression",
			},
			&cli.BoolFlag{
				Name:    "productions",
				Aliases: []string{"p"},
				Usage:   "print the alternatives of each nonterminal",
			},
		},
		Action: runInspect,
	}
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	filter, err := bnf.NewFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	input := cmd.Args().First()
	if input == "" {
		input = stdinName
	}

	cfg, err := loadConfig(cmd, input)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	g, err := bnf.ConvertNamed(input, data, cfg.EngineOptions()...)
	if err != nil {
		return err
	}

	names, err := filter.Select(g)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	styles := stylesFor(out)
	productions := cmd.Bool("productions")

	for _, name := range names {
		set, _ := g.Get(name)

		label := styles.Name.Render(name)
		if g.IsSynthetic(name) {
			label += " " + styles.Dim.Render("(list)")
		}

		_, _ = fmt.Fprintf(out, "%s %s\n", label, styles.Dim.Render(fmt.Sprintf("%d alternatives", set.Len())))

		if !productions {
			continue
		}

		for _, seq := range set.Sequences() {
			text := strings.Join(seq.Names(), " ")
			if len(seq) == 0 {
				text = "%empty"
			}

			_, _ = fmt.Fprintf(out, "  %s\n", text)
		}
	}

	return nil
}
