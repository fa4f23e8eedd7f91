package bnf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrFilterNotBool is returned when a filter expression does not yield a bool.
var ErrFilterNotBool = errors.New("filter expression did not return a boolean")

// Filter selects nonterminals with an expr-lang boolean expression evaluated
// against:
//
//	name         string
//	synthetic    bool   (a list made for "...")
//	alternatives int
//	empty        bool   (no alternatives)
//	nullable     bool   (has an empty alternative)
//	comments     []string
//
// An empty expression matches everything.
type Filter struct {
	source  string
	program *vm.Program
}

// NewFilter compiles expression.
func NewFilter(expression string) (*Filter, error) {
	f := &Filter{source: strings.TrimSpace(expression)}
	if f.source == "" {
		return f, nil
	}

	program, err := expr.Compile(f.source, expr.Env(filterEnv(nil, "")), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", f.source, err)
	}

	f.program = program

	return f, nil
}

// Match evaluates the filter for one nonterminal of g.
func (f *Filter) Match(g *Grammar, name string) (bool, error) {
	if f.program == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, filterEnv(g, name))
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.source, err)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q returned %T", ErrFilterNotBool, f.source, out)
	}

	return ok, nil
}

// Select returns the matching nonterminals in grammar order.
func (f *Filter) Select(g *Grammar) ([]string, error) {
	var names []string

	for _, name := range g.Names() {
		ok, err := f.Match(g, name)
		if err != nil {
			return nil, err
		}

		if ok {
			names = append(names, name)
		}
	}

	return names, nil
}

func filterEnv(g *Grammar, name string) map[string]any {
	set, _ := g.Get(name)

	return map[string]any{
		"name":         name,
		"synthetic":    g.IsSynthetic(name),
		"alternatives": set.Len(),
		"empty":        set.Len() == 0,
		"nullable":     set.Nullable(),
		"comments":     g.Comments(name),
	}
}
