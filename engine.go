package bnf

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultListSuffix is appended to the names of synthesized repetition lists.
const DefaultListSuffix = "_list"

// Engine expands rule blocks into canonical alternatives and accumulates them
// in a Grammar. An Engine owns its grammar and list registry; use one Engine
// per conversion. It is not safe for concurrent use.
type Engine struct {
	grammar         *Grammar
	lists           map[string]bool
	logger          *zap.Logger
	listSuffix      string
	maxAlternatives int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithListSuffix overrides DefaultListSuffix.
func WithListSuffix(suffix string) Option {
	return func(e *Engine) {
		if suffix != "" {
			e.listSuffix = suffix
		}
	}
}

// WithMaxAlternatives bounds the number of alternatives any single
// subexpression may expand to. Zero means unlimited.
func WithMaxAlternatives(n int) Option {
	return func(e *Engine) {
		e.maxAlternatives = n
	}
}

// NewEngine creates an Engine with an empty grammar.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		grammar:    NewGrammar(),
		lists:      make(map[string]bool),
		logger:     zap.NewNop(),
		listSuffix: DefaultListSuffix,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Grammar returns the accumulated grammar.
func (e *Engine) Grammar() *Grammar {
	return e.grammar
}

// AddRule expands r and unions the result into the entry for its name.
// The entry exists afterwards even when r has no alternatives.
func (e *Engine) AddRule(r *Rule) error {
	name := r.Symbol().Name

	// Claim the slot first so the rule is ordered before any list it creates.
	e.grammar.Merge(name, EmptySet())

	set, err := e.Eval(Lower(r))
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.Pos, name, err)
	}

	e.grammar.Merge(name, set)
	e.grammar.addComments(name, r.Comments)

	e.logger.Debug("Reduced rule",
		zap.String("rule", name),
		zap.Int("alternatives", set.Len()))

	return nil
}

// Eval computes the alternatives of x.
func (e *Engine) Eval(x Expr) (AltSet, error) {
	switch x := x.(type) {
	case Atom:
		return AtomSet(x.Symbol), nil

	case Concat:
		acc := Epsilon()

		for _, item := range x.Items {
			set, err := e.Eval(item)
			if err != nil {
				return AltSet{}, err
			}

			if err := e.checkSize(acc.Len() * set.Len()); err != nil {
				return AltSet{}, err
			}

			acc = acc.Concat(set)
		}

		return acc, nil

	case Union:
		acc := EmptySet()

		for _, alt := range x.Alts {
			set, err := e.Eval(alt)
			if err != nil {
				return AltSet{}, err
			}

			if err := e.checkSize(acc.Len() + set.Len()); err != nil {
				return AltSet{}, err
			}

			acc = acc.Union(set)
		}

		return acc, nil

	case Optional:
		set, err := e.Eval(x.Body)
		if err != nil {
			return AltSet{}, err
		}

		return set.Optional(), nil

	case Group:
		return e.Eval(x.Body)

	case Repeat:
		set, err := e.Eval(x.Body)
		if err != nil {
			return AltSet{}, err
		}

		return e.repeat(set), nil

	default:
		panic(fmt.Sprintf("bnf: unhandled expression %T", x))
	}
}

func (e *Engine) checkSize(n int) error {
	if e.maxAlternatives > 0 && n > e.maxAlternatives {
		return fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyAlternatives, n, e.maxAlternatives)
	}

	return nil
}

// repeat replaces every unit in set by a reference to its list nonterminal.
// Repeating the empty sequence yields the empty sequence.
func (e *Engine) repeat(set AltSet) AltSet {
	out := EmptySet()

	for _, unit := range set.Sequences() {
		if len(unit) == 0 {
			out = out.Union(Epsilon())

			continue
		}

		out = out.Union(AtomSet(e.list(unit)))
	}

	return out
}

// ListName returns the name of the list nonterminal for unit.
func (e *Engine) ListName(unit Sequence) string {
	return strings.Join(unit.Names(), "_") + e.listSuffix
}

// list returns the list nonterminal L for unit and unions L ::= unit | L unit
// into its entry. Distinct units can share a name (a terminal word and a
// nonterminal with the same spelling, or a group and a single nonterminal
// whose names join to the same text); each contributes its own closure.
func (e *Engine) list(unit Sequence) Symbol {
	name := e.ListName(unit)
	sym := Symbol{Kind: Nonterminal, Name: name}

	e.grammar.Merge(name, NewAltSet(unit, Sequence{sym}.concat(unit)))

	if !e.lists[name] {
		e.lists[name] = true
		e.grammar.markSynthetic(name)

		e.logger.Debug("Created list nonterminal",
			zap.String("list", name),
			zap.Stringer("unit", unit))
	}

	return sym
}
