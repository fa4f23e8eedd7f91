package bnf_test

import (
	"testing"

	"github.com/rlch/bnf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func atom(sym bnf.Symbol) bnf.Expr {
	return bnf.Atom{Symbol: sym}
}

func TestEngine_Eval(t *testing.T) {
	t.Parallel()

	a, b := bnf.NewTerminal("A"), bnf.NewTerminal("B")

	tests := []struct {
		name     string
		expr     bnf.Expr
		expected [][]string
	}{
		{"atom", atom(a), [][]string{{"A"}}},
		{"empty concat is epsilon", bnf.Concat{}, [][]string{{}}},
		{"empty union has no alternatives", bnf.Union{}, [][]string{}},
		{"concat", bnf.Concat{Items: []bnf.Expr{atom(a), atom(b)}}, [][]string{{"A", "B"}}},
		{"union", bnf.Union{Alts: []bnf.Expr{atom(b), atom(a)}}, [][]string{{"A"}, {"B"}}},
		{"optional", bnf.Optional{Body: atom(a)}, [][]string{{}, {"A"}}},
		{"group", bnf.Group{Body: bnf.Union{Alts: []bnf.Expr{atom(a), atom(b)}}}, [][]string{{"A"}, {"B"}}},
		{"repeat", bnf.Repeat{Body: atom(a)}, [][]string{{"A_list"}}},
		{"repeat of optional", bnf.Repeat{Body: bnf.Optional{Body: atom(a)}}, [][]string{{}, {"A_list"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := bnf.NewEngine()

			got, err := e.Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Strings())
		})
	}
}

func TestEngine_ListCreatedOnce(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	e := bnf.NewEngine(bnf.WithLogger(zap.New(core)))

	unit := bnf.Concat{Items: []bnf.Expr{
		atom(bnf.NewNonterminal("<comma>")),
		atom(bnf.NewNonterminal("<transaction mode 2>")),
	}}

	for range 3 {
		got, err := e.Eval(bnf.Repeat{Body: bnf.Group{Body: unit}})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"comma_transaction_mode_2_list"}}, got.Strings())
	}

	g := e.Grammar()
	assert.Equal(t, 1, g.Len())

	set, ok := g.Get("comma_transaction_mode_2_list")
	require.True(t, ok)
	assert.Equal(t, [][]string{
		{"comma", "transaction_mode_2"},
		{"comma_transaction_mode_2_list", "comma", "transaction_mode_2"},
	}, set.Strings())

	assert.Equal(t, 1, logs.FilterMessage("Created list nonterminal").Len())
}

func TestEngine_ListMergesWithUserRule(t *testing.T) {
	t.Parallel()

	file, err := bnf.Parse([]byte(`
<x_list> ::= NONE

<y> ::= <x>...
`))
	require.NoError(t, err)

	e := bnf.NewEngine()
	for _, r := range file.Rules {
		require.NoError(t, e.AddRule(r))
	}

	set, ok := e.Grammar().Get("x_list")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"NONE"}, {"x"}, {"x_list", "x"}}, set.Strings())
}

func TestEngine_AddRuleLogsReduction(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	e := bnf.NewEngine(bnf.WithLogger(zap.New(core)))

	file, err := bnf.Parse([]byte("<x> ::= [ A ] B"))
	require.NoError(t, err)
	require.NoError(t, e.AddRule(file.Rules[0]))

	entries := logs.FilterMessage("Reduced rule").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "x", entries[0].ContextMap()["rule"])
	assert.EqualValues(t, 2, entries[0].ContextMap()["alternatives"])
}

func TestEngine_ListName(t *testing.T) {
	t.Parallel()

	e := bnf.NewEngine()
	unit := bnf.Sequence{bnf.NewNonterminal("<session reset command>")}

	assert.Equal(t, "session_reset_command_list", e.ListName(unit))
	assert.Equal(t, "session_reset_command_items", bnf.NewEngine(bnf.WithListSuffix("_items")).ListName(unit))
}

func TestLower(t *testing.T) {
	t.Parallel()

	file, err := bnf.Parse([]byte("<x> ::= A [ <b> ]... | { C | D }"))
	require.NoError(t, err)

	got := bnf.Lower(file.Rules[0])

	want := bnf.Union{Alts: []bnf.Expr{
		bnf.Concat{Items: []bnf.Expr{
			atom(bnf.NewTerminal("A")),
			bnf.Repeat{Body: bnf.Optional{Body: bnf.Union{Alts: []bnf.Expr{
				bnf.Concat{Items: []bnf.Expr{atom(bnf.NewNonterminal("<b>"))}},
			}}}},
		}},
		bnf.Concat{Items: []bnf.Expr{
			bnf.Group{Body: bnf.Union{Alts: []bnf.Expr{
				bnf.Concat{Items: []bnf.Expr{atom(bnf.NewTerminal("C"))}},
				bnf.Concat{Items: []bnf.Expr{atom(bnf.NewTerminal("D"))}},
			}}},
		}},
	}}

	assert.Equal(t, want, got)
}
