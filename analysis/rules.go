package analysis

import (
	"sort"
	"strconv"

	"github.com/rlch/bnf"
)

// Rule represents a semantic analysis check.
// Inspired by go/analysis.Analyzer pattern.
type Rule struct {
	// Name is a short identifier for the rule (used in diagnostic codes).
	Name string

	// Doc is a brief description of what the rule checks.
	Doc string

	// Severity is the default severity for diagnostics from this rule.
	Severity DiagnosticSeverity

	// Run executes the rule and appends any diagnostics to the file.
	Run func(f *AnalyzedFile)
}

// DefaultRules returns all built-in semantic analysis rules.
func DefaultRules() []*Rule {
	return []*Rule{
		// Error-level checks.
		undefinedNonterminalRule,

		// Warning-level checks.
		duplicateRuleRule,
		duplicateAlternativeRule,

		// Information-level checks.
		emptyRuleRule,
	}
}

func report(f *AnalyzedFile, code string, severity DiagnosticSeverity, span bnf.Span, msg string) {
	f.Diagnostics = append(f.Diagnostics, Diagnostic{
		Span:     span,
		Severity: severity,
		Message:  msg,
		Code:     code,
		Source:   source,
	})
}

// ----------------------------------------------------------------------------
// Rule: undefined-nonterminal
// ----------------------------------------------------------------------------

var undefinedNonterminalRule = &Rule{
	Name:     "undefined-nonterminal",
	Doc:      "Reports nonterminals that are referenced but never defined.",
	Severity: SeverityError,
	Run:      checkUndefinedNonterminals,
}

func checkUndefinedNonterminals(f *AnalyzedFile) {
	for _, ref := range f.Symbols.References {
		if _, ok := f.Symbols.Rules[ref.Name]; !ok {
			report(f, "undefined-nonterminal", SeverityError, ref.Span, "undefined nonterminal: "+ref.Name)
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: duplicate-rule
// ----------------------------------------------------------------------------

var duplicateRuleRule = &Rule{
	Name:     "duplicate-rule",
	Doc:      "Reports nonterminals defined by more than one rule block.",
	Severity: SeverityWarning,
	Run:      checkDuplicateRules,
}

func checkDuplicateRules(f *AnalyzedFile) {
	for _, name := range sortedRuleNames(f) {
		sym := f.Symbols.Rules[name]

		for _, r := range sym.Definitions[1:] {
			report(f, "duplicate-rule", SeverityWarning, r.Span(),
				"rule "+name+" is also defined at line "+formatLine(sym.Span)+"; alternatives are merged")
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: duplicate-alternative
// ----------------------------------------------------------------------------

var duplicateAlternativeRule = &Rule{
	Name:     "duplicate-alternative",
	Doc:      "Reports alternatives written twice in the same choice.",
	Severity: SeverityWarning,
	Run:      checkDuplicateAlternatives,
}

func checkDuplicateAlternatives(f *AnalyzedFile) {
	if f.File == nil {
		return
	}

	for _, r := range f.File.Rules {
		checkChoice(f, r.Symbol().Name, r.Span(), r.Alternatives)
	}
}

func checkChoice(f *AnalyzedFile, name string, span bnf.Span, alts []*bnf.Alternative) {
	seen := make(map[string]bool, len(alts))

	for _, alt := range alts {
		text := alt.String()
		if seen[text] {
			at := span
			if len(alt.Elements) > 0 {
				at = alt.Elements[0].Span()
			}

			report(f, "duplicate-alternative", SeverityWarning, at, "duplicate alternative in "+name+": "+text)

			continue
		}

		seen[text] = true

		for _, e := range alt.Elements {
			switch {
			case e.Optional != nil:
				checkChoice(f, name, e.Span(), e.Optional.Alternatives)
			case e.Group != nil:
				checkChoice(f, name, e.Span(), e.Group.Alternatives)
			}
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: empty-rule
// ----------------------------------------------------------------------------

var emptyRuleRule = &Rule{
	Name:     "empty-rule",
	Doc:      "Reports rules with no alternatives, usually defined in prose.",
	Severity: SeverityInformation,
	Run:      checkEmptyRules,
}

func checkEmptyRules(f *AnalyzedFile) {
	for _, name := range sortedRuleNames(f) {
		sym := f.Symbols.Rules[name]

		empty := true
		for _, r := range sym.Definitions {
			if !r.IsEmpty() {
				empty = false

				break
			}
		}

		if empty {
			report(f, "empty-rule", SeverityInformation, sym.Span, "rule "+name+" has no alternatives")
		}
	}
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func formatLine(span bnf.Span) string {
	return strconv.Itoa(span.Start.Line)
}

// sortedRuleNames returns the defined names ordered by first definition.
func sortedRuleNames(f *AnalyzedFile) []string {
	names := make([]string, 0, len(f.Symbols.Rules))
	for name := range f.Symbols.Rules {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return f.Symbols.Rules[names[i]].Span.Start.Offset < f.Symbols.Rules[names[j]].Span.Start.Offset
	})

	return names
}
