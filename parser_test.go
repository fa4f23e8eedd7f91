package bnf_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rlch/bnf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

var ignorePositions = cmpopts.IgnoreFields(bnf.Rule{}, "Pos", "EndPos")

func ignoreElementPos() cmp.Option {
	return cmpopts.IgnoreFields(bnf.Element{}, "Pos")
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected *bnf.File
	}{
		{
			name:  "single terminal",
			input: "<true literal> ::= TRUE",
			expected: &bnf.File{
				Rules: []*bnf.Rule{{
					Name: "<true literal>",
					Alternatives: []*bnf.Alternative{
						{Elements: []*bnf.Element{{Terminal: ptr("TRUE")}}},
					},
				}},
			},
		},
		{
			name: "optional group with repetition",
			input: `
<transaction characteristics> ::=
    <transaction mode 1> [ { <comma> <transaction mode 2> }... ]
`,
			expected: &bnf.File{
				Rules: []*bnf.Rule{{
					Name: "<transaction characteristics>",
					Alternatives: []*bnf.Alternative{{
						Elements: []*bnf.Element{
							{Nonterminal: ptr("<transaction mode 1>")},
							{Optional: &bnf.Choice{
								Alternatives: []*bnf.Alternative{{
									Elements: []*bnf.Element{{
										Group: &bnf.Choice{
											Alternatives: []*bnf.Alternative{{
												Elements: []*bnf.Element{
													{Nonterminal: ptr("<comma>")},
													{Nonterminal: ptr("<transaction mode 2>")},
												},
											}},
										},
										Repeat: true,
									}},
								}},
							}},
						},
					}},
				}},
			},
		},
		{
			name:  "quoted literal",
			input: `<reverse solidus> ::= "\\"`,
			expected: &bnf.File{
				Rules: []*bnf.Rule{{
					Name: "<reverse solidus>",
					Alternatives: []*bnf.Alternative{
						{Elements: []*bnf.Element{{Literal: ptr(`"\\"`)}}},
					},
				}},
			},
		},
		{
			name: "empty rule with comment",
			input: `
<implementation-defined access mode> ::=
    !! See the Syntax Rules.
`,
			expected: &bnf.File{
				Rules: []*bnf.Rule{{
					Name:     "<implementation-defined access mode>",
					Comments: []string{"See the Syntax Rules."},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bnf.Parse([]byte(tt.input))
			require.NoError(t, err)

			if diff := cmp.Diff(tt.expected, got, ignorePositions, ignoreElementPos()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "alternatives across lines",
			input: `<true literal> ::=
  TRUE
| FALSE
| UNKNOWN
`,
			expected: "<true literal> ::= TRUE | FALSE | UNKNOWN",
		},
		{
			name: "blank lines inside a rule body",
			input: `
<pre-reserved word> ::=

    ABSTRACT

  | AGGREGATE

  | AGGREGATES
`,
			expected: "<pre-reserved word> ::= ABSTRACT | AGGREGATE | AGGREGATES",
		},
		{
			name: "two rules",
			input: `
<GQL-program> ::=
    <program activity> [ <session close command> ]
  | <session close command>

<program activity> ::=
    <session activity>
  | <transaction activity>
`,
			expected: "<GQL-program> ::= <program activity> [ <session close command> ] | <session close command>\n\n" +
				"<program activity> ::= <session activity> | <transaction activity>",
		},
		{
			name: "rules without blank line between them",
			input: `<a> ::= B
<c> ::= D`,
			expected: "<a> ::= B\n\n<c> ::= D",
		},
		{
			name: "mandatory group spanning lines",
			input: `
<create graph statement> ::=
    CREATE { [ PROPERTY ] GRAPH [ IF NOT EXISTS ]
  | OR REPLACE [ PROPERTY ] GRAPH }
`,
			expected: "<create graph statement> ::= CREATE { [ PROPERTY ] GRAPH [ IF NOT EXISTS ] | OR REPLACE [ PROPERTY ] GRAPH }",
		},
		{
			name:     "trailing comment glued to element",
			input:    "<s> ::=\n    <c>\n  | <d>!! See the Syntax Rules.\n",
			expected: "<s> ::= <c> | <d>",
		},
		{
			name:     "empty input",
			input:    "\n\n",
			expected: "",
		},
		{
			name:     "empty body",
			input:    "<a> ::=",
			expected: "<a> ::=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bnf.Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"wrong separator", "<a> := b"},
		{"leading bar", "<pre-reserved word> ::=\n\n  | ABSTRACT\n\n  | AGGREGATE\n"},
		{"trailing bar", "<a> ::= B |"},
		{"empty alternative in the middle", "<a> ::= B | | C"},
		{"trailing bar before next rule", "<a> ::= B |\n<c> ::= D"},
		{"unterminated optional", "<a> ::= [ B"},
		{"unterminated group", "<a> ::= { B | C"},
		{"mismatched delimiters", "<a> ::= { B ]"},
		{"empty optional", "<a> ::= [ ]"},
		{"bare ellipsis", "<a> ::= ..."},
		{"double ellipsis", "<a> ::= B......"},
		{"body before any rule", "B C"},
		{"unterminated literal", `<a> ::= "b`},
		{"stray close brace", "<a> ::= B }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, err := bnf.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, file)

			var syntaxErr *bnf.SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "error %T is not a *SyntaxError", err)
			assert.NotEmpty(t, syntaxErr.Msg)
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := bnf.ParseNamed("gql.bnf", []byte("<a> ::= B\n<c> := D"))
	require.Error(t, err)

	var syntaxErr *bnf.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "gql.bnf", syntaxErr.Pos.Filename)
	assert.Equal(t, 2, syntaxErr.Pos.Line)
	assert.ErrorIs(t, err, bnf.ErrUnexpectedCharacter)
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	input := `!! Clause 6: GQL programs

<double single quote> ::=
    <quote> <quote>
    !! See the Syntax Rules.

<rollback command> ::=
    ROLLBACK
`

	file, err := bnf.Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, file.Rules, 2)

	assert.Equal(t, []string{"Clause 6: GQL programs"}, file.Comments)
	assert.Equal(t, []string{"See the Syntax Rules."}, file.Rules[0].Comments)
	assert.Empty(t, file.Rules[1].Comments)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, bnf.Validate([]byte("<delete statement> ::= [ DETACH | NODETACH ] DELETE <delete item list>")))
	require.NoError(t, bnf.Validate([]byte("<a> ::= !! nothing here")))
	require.Error(t, bnf.Validate([]byte("<a> := b")))
	require.Error(t, bnf.Validate([]byte("<a> ::= | B")))
}
