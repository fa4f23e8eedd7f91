// Package analysis provides semantic checks for BNF grammar files.
package analysis

import (
	"fmt"

	"github.com/rlch/bnf"
)

// AnalyzedFile holds semantic analysis results for a single file.
type AnalyzedFile struct {
	// Path is the file path used in positions.
	Path string

	// File is the parsed AST. Nil if parsing failed.
	File *bnf.File

	// Grammar is the expanded grammar. Nil if parsing or expansion failed.
	Grammar *bnf.Grammar

	// ParseError holds the parse error if parsing failed.
	ParseError error

	// Diagnostics contains all errors and warnings found during analysis.
	Diagnostics []Diagnostic

	// Symbols contains all definitions and references in this file.
	Symbols *SymbolTable
}

// SymbolTable holds the rule definitions and nonterminal references of a file.
type SymbolTable struct {
	// Rules maps a normalized nonterminal name to its definitions.
	Rules map[string]*RuleSymbol

	// References lists every <name> used on a right-hand side, in source order.
	References []*Reference
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Rules: make(map[string]*RuleSymbol),
	}
}

// SymbolKind represents the type of a symbol.
type SymbolKind int

// Symbol kind constants.
const (
	SymbolKindRule SymbolKind = iota
	SymbolKindReference
)

// Symbol is the base type for all symbol kinds.
type Symbol struct {
	Name string
	Span bnf.Span
	Kind SymbolKind
}

// RuleSymbol represents a defined nonterminal. Span is the first definition.
type RuleSymbol struct {
	Symbol

	// Definitions are the rule blocks for this name, in source order.
	Definitions []*bnf.Rule
}

// Reference represents a nonterminal used inside a rule body.
type Reference struct {
	Symbol

	// From is the normalized name of the rule the reference appears in.
	From string
}

// Diagnostic represents an error or warning found during analysis.
type Diagnostic struct {
	Span     bnf.Span
	Severity DiagnosticSeverity
	Message  string
	Code     string // e.g., "undefined-nonterminal", "duplicate-rule"
	Source   string // "bnf"
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Span.Start, d.Severity, d.Message, d.Code)
}

// DiagnosticSeverity indicates the severity of a diagnostic.
type DiagnosticSeverity int

// Diagnostic severity constants.
const (
	SeverityError DiagnosticSeverity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// HasErrors reports whether any diagnostic has error severity.
func (f *AnalyzedFile) HasErrors() bool {
	return f.Count(SeverityError) > 0
}

// Count returns the number of diagnostics at or above severity.
func (f *AnalyzedFile) Count(severity DiagnosticSeverity) int {
	n := 0

	for _, d := range f.Diagnostics {
		if d.Severity <= severity {
			n++
		}
	}

	return n
}
