package analysis_test

import (
	"testing"

	"github.com/rlch/bnf/analysis"
	"github.com/stretchr/testify/assert"
)

func TestRule_UndefinedNonterminal(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::= B [ <missing> ]
`)

	assertHasDiagnostic(t, result, "undefined-nonterminal")
}

func TestRule_DuplicateRule(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::= B

<a> ::= C
`)

	assertHasDiagnostic(t, result, "duplicate-rule")
	assert.Equal(t, []string{"B", "C"}, flatten(result, "a"))
}

func TestRule_DuplicateAlternative(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::= B | C | B
`)

	assertHasDiagnostic(t, result, "duplicate-alternative")
}

func TestRule_DuplicateAlternativeNested(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::= X [ B | B ]
`)

	assertHasDiagnostic(t, result, "duplicate-alternative")
}

func TestRule_DistinctAlternatives(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::= B | C | B C
`)

	assertNoDiagnostic(t, result, "duplicate-alternative")
}

func TestRule_EmptyRule(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::= <b>

<b> ::=
    !! See the Syntax Rules.
`)

	assertHasDiagnostic(t, result, "empty-rule")
}

func TestRule_EmptyRuleDefinedLater(t *testing.T) {
	t.Parallel()

	result := analyze(t, `
<a> ::=

<a> ::= B
`)

	assertNoDiagnostic(t, result, "empty-rule")
}

// Test helpers

func analyze(t *testing.T, input string) *analysis.AnalyzedFile {
	t.Helper()

	analyzer := analysis.NewAnalyzer()

	return analyzer.Analyze("test.bnf", []byte(input))
}

func flatten(result *analysis.AnalyzedFile, name string) []string {
	set, _ := result.Grammar.Get(name)

	var out []string
	for _, seq := range set.Sequences() {
		out = append(out, seq.String())
	}

	return out
}

func assertHasDiagnostic(t *testing.T, result *analysis.AnalyzedFile, code string) {
	t.Helper()

	for _, d := range result.Diagnostics {
		if d.Code == code {
			return
		}
	}

	t.Errorf("expected diagnostic %q, got:", code)

	for _, d := range result.Diagnostics {
		t.Logf("  %s: %s", d.Code, d.Message)
	}
}

func assertNoDiagnostic(t *testing.T, result *analysis.AnalyzedFile, code string) {
	t.Helper()

	for _, d := range result.Diagnostics {
		if d.Code == code {
			t.Errorf("unexpected diagnostic %q: %s", code, d.Message)
		}
	}
}
