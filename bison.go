package bnf

import (
	"fmt"
	"strings"
)

// RenderOptions controls bison output.
type RenderOptions struct {
	// Start overrides the %start symbol. Defaults to the first rule.
	Start string
	// Prologue is copied verbatim before the declarations.
	Prologue string
	// OmitTokens suppresses %token declarations for bare terminal words.
	OmitTokens bool
	// OmitComments drops source comments from the output.
	OmitComments bool
}

// Render formats a grammar as a bison grammar file, one alternative per line.
//
// Grammar names are rewritten into bison identifiers on output only: quotes
// are dropped, other characters outside [A-Za-z0-9_.] become _xHH_, and a
// leading digit gets a "_" prefix, so the list made for "\\"... renders as
// _x5C__x5C__list. Single-digit terminal words render as character literals
// ('0'); quoted literals are copied verbatim.
//
// Terminal words and nonterminals live in one namespace in bison. A grammar
// that uses the same spelling for both (<x> ::= a | <a>) renders both as a,
// and bison will reject the result.
func Render(g *Grammar, opts RenderOptions) string {
	var b strings.Builder

	r := &renderer{b: &b, g: g, opts: opts}
	r.renderGrammar()

	return b.String()
}

type renderer struct {
	b    *strings.Builder
	g    *Grammar
	opts RenderOptions
}

func (r *renderer) write(s string) {
	r.b.WriteString(s)
}

func (r *renderer) writeLine(s string) {
	r.write(s)
	r.write("\n")
}

func (r *renderer) blankLine() {
	r.write("\n")
}

func (r *renderer) renderGrammar() {
	if p := strings.TrimSpace(r.opts.Prologue); p != "" {
		r.writeLine(p)
		r.blankLine()
	}

	if !r.opts.OmitTokens {
		var tokens []string

		for _, t := range r.g.Terminals() {
			if name := terminalName(t); name[0] != '\'' {
				tokens = append(tokens, name)
			}
		}

		for _, t := range tokens {
			r.writeLine("%token " + t)
		}

		if len(tokens) > 0 {
			r.blankLine()
		}
	}

	if start := r.start(); start != "" {
		r.writeLine("%start " + start)
		r.blankLine()
	}

	r.writeLine("%%")

	for _, name := range r.g.Names() {
		r.blankLine()
		r.renderRule(name)
	}

	r.blankLine()
	r.writeLine("%%")
}

func (r *renderer) start() string {
	if r.opts.Start != "" {
		return identifier(NormalizeName(r.opts.Start))
	}

	names := r.g.Names()
	if len(names) == 0 {
		return ""
	}

	return identifier(names[0])
}

func (r *renderer) renderRule(name string) {
	if !r.opts.OmitComments {
		for _, c := range r.g.Comments(name) {
			r.writeLine("/* " + strings.ReplaceAll(c, "*/", "* /") + " */")
		}
	}

	set, _ := r.g.Get(name)
	if set.Len() == 0 {
		r.writeLine("/* " + identifier(name) + ": no productions */")

		return
	}

	r.writeLine(identifier(name) + ":")

	for i, seq := range set.Sequences() {
		lead := "  | "
		if i == 0 {
			lead = "    "
		}

		r.writeLine(lead + renderSequence(seq))
	}

	r.writeLine("  ;")
}

func renderSequence(seq Sequence) string {
	if len(seq) == 0 {
		return "%empty"
	}

	parts := make([]string, len(seq))
	for i, sym := range seq {
		parts[i] = symbolName(sym)
	}

	return strings.Join(parts, " ")
}

func symbolName(sym Symbol) string {
	switch {
	case sym.Kind == Nonterminal:
		return identifier(sym.Name)
	case sym.IsLiteral():
		return sym.Name
	default:
		return terminalName(sym.Name)
	}
}

// terminalName renders a bare terminal word. Words that are already bison
// identifiers are kept; a single digit becomes a character literal.
func terminalName(word string) string {
	if len(word) == 1 && isASCIIDigit(word[0]) {
		return "'" + word + "'"
	}

	return identifier(word)
}

// identifier maps a grammar name onto the bison identifier alphabet.
func identifier(name string) string {
	var b strings.Builder

	for _, c := range []byte(name) {
		switch {
		case c == '"' || c == '\'':
		case c == '_' || c == '.' || isASCIIDigit(c) || isASCIILetter(c):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_x%02X_", c)
		}
	}

	id := b.String()
	if id == "" || isASCIIDigit(id[0]) {
		id = "_" + id
	}

	return id
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
