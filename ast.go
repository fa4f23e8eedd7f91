// Package bnf converts standards-style BNF (optional groups, grouped
// alternation, "..." repetition) into a canonical context-free grammar that
// a bottom-up parser generator such as bison can consume.
package bnf

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed grammar source: a sequence of rule blocks.
type File struct {
	Rules []*Rule `parser:"@@*"`

	// Comments holds the "!!" comments that precede the first rule.
	Comments []string `parser:""`
}

// Rule is one `<name> ::= alternatives` block.
type Rule struct {
	Pos    lexer.Position `parser:""`
	EndPos lexer.Position `parser:""`

	Name         string         `parser:"@RuleName '::='"`
	Alternatives []*Alternative `parser:"( @@ ( '|' @@ )* )?"`

	// Comments holds the "!!" comments found inside the rule block.
	Comments []string `parser:""`
}

// Alternative is a sequence of elements.
type Alternative struct {
	Elements []*Element `parser:"@@+"`
}

// Choice is the body of a bracketed or braced group.
type Choice struct {
	Alternatives []*Alternative `parser:"@@ ( '|' @@ )*"`
}

// Element is a single term of an alternative, optionally repeated.
// Exactly one of Nonterminal, Terminal, Literal, Optional or Group is set.
type Element struct {
	Pos lexer.Position `parser:""`

	Nonterminal *string `parser:"(   @Nonterminal"`
	Terminal    *string `parser:"  | @Terminal"`
	Literal     *string `parser:"  | @Literal"`
	Optional    *Choice `parser:"  | '[' @@ ']'"`
	Group       *Choice `parser:"  | '{' @@ '}' )"`

	Repeat bool `parser:"@Ellipsis?"`
}

// Symbol returns the normalized nonterminal defined by the rule.
func (r *Rule) Symbol() Symbol {
	return NewNonterminal(r.Name)
}

// IsEmpty reports whether the rule has no alternatives at all.
func (r *Rule) IsEmpty() bool {
	return len(r.Alternatives) == 0
}

// Span returns the source range of the rule block.
func (r *Rule) Span() Span {
	return Span{Start: r.Pos, End: r.EndPos}
}

// Span returns the start of the element; elements carry no end position.
func (e *Element) Span() Span {
	return Span{Start: e.Pos, End: e.Pos}
}

// String renders the file back to BNF, one rule per block.
func (f *File) String() string {
	parts := make([]string, len(f.Rules))
	for i, r := range f.Rules {
		parts[i] = r.String()
	}

	return strings.Join(parts, "\n\n")
}

func (r *Rule) String() string {
	if r.IsEmpty() {
		return r.Name + " ::="
	}

	return r.Name + " ::= " + joinAlternatives(r.Alternatives)
}

func (a *Alternative) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}

	return strings.Join(parts, " ")
}

func (c *Choice) String() string {
	return joinAlternatives(c.Alternatives)
}

func (e *Element) String() string {
	var s string

	switch {
	case e.Nonterminal != nil:
		s = *e.Nonterminal
	case e.Terminal != nil:
		s = *e.Terminal
	case e.Literal != nil:
		s = *e.Literal
	case e.Optional != nil:
		s = "[ " + e.Optional.String() + " ]"
	case e.Group != nil:
		s = "{ " + e.Group.String() + " }"
	}

	if e.Repeat {
		s += ellipsisOp
	}

	return s
}

func joinAlternatives(alts []*Alternative) string {
	parts := make([]string, len(alts))
	for i, a := range alts {
		parts[i] = a.String()
	}

	return strings.Join(parts, " | ")
}
