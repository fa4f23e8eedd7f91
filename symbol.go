package bnf

import "strings"

// Kind tags a Symbol as terminal or nonterminal.
type Kind uint8

const (
	// Terminal is an opaque word or quoted literal.
	Terminal Kind = iota
	// Nonterminal is a <name> reference or a synthesized list.
	Nonterminal
)

func (k Kind) String() string {
	if k == Nonterminal {
		return "nonterminal"
	}

	return "terminal"
}

// Symbol is a grammar symbol. Two symbols are equal iff Kind and Name match,
// so Symbol is usable as a map key.
type Symbol struct {
	Kind Kind
	Name string
}

var nameReplacer = strings.NewReplacer(" ", "_", "-", "_")

// NormalizeName turns a nonterminal spelling such as "<GQL-program>" into
// its display name "GQL_program". Angle brackets are optional.
func NormalizeName(spelling string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(spelling, "<"), ">")

	return nameReplacer.Replace(name)
}

// NewNonterminal returns the nonterminal for a <name> spelling.
func NewNonterminal(spelling string) Symbol {
	return Symbol{Kind: Nonterminal, Name: NormalizeName(spelling)}
}

// NewTerminal returns the terminal for a bare word or quoted literal. The
// spelling is kept verbatim, quotes and escapes included.
func NewTerminal(spelling string) Symbol {
	return Symbol{Kind: Terminal, Name: spelling}
}

// IsLiteral reports whether s is a quoted literal terminal.
func (s Symbol) IsLiteral() bool {
	return s.Kind == Terminal && s.Name != "" && (s.Name[0] == '"' || s.Name[0] == '\'')
}

func (s Symbol) String() string {
	return s.Name
}
