package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// printDiff writes a line diff from original to generated. Nothing is
// written when they are equal.
func printDiff(out io.Writer, styles *Styles, path, original, generated string) {
	if original == generated {
		return
	}

	if path == "" {
		path = "<stdout>"
	}

	_, _ = fmt.Fprintf(out, "%s\n", styles.Path.Render("--- "+path))
	_, _ = fmt.Fprintf(out, "%s\n", styles.Path.Render("+++ "+path))

	for _, line := range diffLines(original, generated) {
		switch line[0] {
		case '-':
			_, _ = fmt.Fprintln(out, styles.Removed.Render(line))
		case '+':
			_, _ = fmt.Fprintln(out, styles.Added.Render(line))
		default:
			_, _ = fmt.Fprintln(out, styles.Dim.Render(line))
		}
	}
}

// diffLines returns every line of the two texts prefixed with "-", "+" or " ".
func diffLines(original, generated string) []string {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(original, generated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []string

	for _, d := range diffs {
		prefix := " "

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			out = append(out, prefix+strings.TrimSuffix(line, "\n"))
		}
	}

	return out
}
