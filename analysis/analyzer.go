package analysis

import (
	"errors"

	"github.com/rlch/bnf"
)

const source = "bnf"

// Analyzer performs semantic analysis on BNF files.
type Analyzer struct {
	// engine options used to expand the grammar.
	options []bnf.Option

	// rules is the set of semantic checks to run.
	rules []*Rule
}

// NewAnalyzer creates a new analyzer with default rules.
func NewAnalyzer(opts ...bnf.Option) *Analyzer {
	return NewAnalyzerWithRules(DefaultRules(), opts...)
}

// NewAnalyzerWithRules creates an analyzer with custom rules.
func NewAnalyzerWithRules(rules []*Rule, opts ...bnf.Option) *Analyzer {
	return &Analyzer{
		options: opts,
		rules:   rules,
	}
}

// Analyze parses, expands and checks a BNF file.
func (a *Analyzer) Analyze(path string, content []byte) *AnalyzedFile {
	result := &AnalyzedFile{
		Path:        path,
		Diagnostics: []Diagnostic{},
		Symbols:     NewSymbolTable(),
	}

	file, err := bnf.ParseNamed(path, content)
	if err != nil {
		result.ParseError = err
		result.Diagnostics = append(result.Diagnostics, parseErrorToDiagnostic(err))

		return result
	}

	result.File = file

	buildSymbols(result)

	g, err := bnf.ConvertFile(file, a.options...)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Message:  err.Error(),
			Code:     "expansion-error",
			Source:   source,
		})
	}

	result.Grammar = g

	for _, rule := range a.rules {
		rule.Run(result)
	}

	return result
}

// parseErrorToDiagnostic converts a parse error to a diagnostic.
func parseErrorToDiagnostic(err error) Diagnostic {
	span := bnf.Span{}
	msg := err.Error()

	var syntaxErr *bnf.SyntaxError
	if errors.As(err, &syntaxErr) {
		span = bnf.Span{Start: syntaxErr.Pos, End: syntaxErr.Pos}
		msg = syntaxErr.Msg
	}

	return Diagnostic{
		Span:     span,
		Severity: SeverityError,
		Message:  msg,
		Code:     "parse-error",
		Source:   source,
	}
}

// buildSymbols records every rule definition and nonterminal reference.
func buildSymbols(f *AnalyzedFile) {
	if f.File == nil {
		return
	}

	for _, r := range f.File.Rules {
		name := r.Symbol().Name

		sym, ok := f.Symbols.Rules[name]
		if !ok {
			sym = &RuleSymbol{
				Symbol: Symbol{
					Name: name,
					Span: r.Span(),
					Kind: SymbolKindRule,
				},
			}
			f.Symbols.Rules[name] = sym
		}

		sym.Definitions = append(sym.Definitions, r)

		walkElements(r.Alternatives, func(e *bnf.Element) {
			if e.Nonterminal == nil {
				return
			}

			f.Symbols.References = append(f.Symbols.References, &Reference{
				Symbol: Symbol{
					Name: bnf.NormalizeName(*e.Nonterminal),
					Span: e.Span(),
					Kind: SymbolKindReference,
				},
				From: name,
			})
		})
	}
}

// walkElements calls fn for every element, descending into [ ] and { }.
func walkElements(alts []*bnf.Alternative, fn func(*bnf.Element)) {
	for _, alt := range alts {
		for _, e := range alt.Elements {
			fn(e)

			switch {
			case e.Optional != nil:
				walkElements(e.Optional.Alternatives, fn)
			case e.Group != nil:
				walkElements(e.Group.Alternatives, fn)
			}
		}
	}
}
