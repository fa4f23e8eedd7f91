package bnf

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Grammar maps nonterminal names to their canonical alternatives. Entries
// keep the order in which their names were first defined. A nil *Grammar
// behaves as an empty grammar for read-only methods.
type Grammar struct {
	rules     *linkedhashmap.Map
	synthetic map[string]bool
	comments  map[string][]string
}

// NewGrammar returns an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		rules:     linkedhashmap.New(),
		synthetic: make(map[string]bool),
		comments:  make(map[string][]string),
	}
}

// Len returns the number of nonterminals.
func (g *Grammar) Len() int {
	if g == nil {
		return 0
	}

	return g.rules.Size()
}

// Has reports whether name has an entry, even one with no alternatives.
func (g *Grammar) Has(name string) bool {
	_, ok := g.Get(name)

	return ok
}

// Get returns the alternatives for name.
func (g *Grammar) Get(name string) (AltSet, bool) {
	if g == nil {
		return AltSet{}, false
	}

	v, ok := g.rules.Get(name)
	if !ok {
		return AltSet{}, false
	}

	return v.(AltSet), true //nolint:forcetypeassert // only AltSets are stored
}

// Names returns the nonterminals in first-definition order.
func (g *Grammar) Names() []string {
	if g == nil {
		return nil
	}

	keys := g.rules.Keys()

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string) //nolint:forcetypeassert // only strings are used as keys
	}

	return names
}

// Merge unions set into the entry for name, creating the entry if needed.
func (g *Grammar) Merge(name string, set AltSet) {
	if prev, ok := g.Get(name); ok {
		set = prev.Union(set)
	}

	g.rules.Put(name, set)
}

// IsSynthetic reports whether name was invented for a repetition.
func (g *Grammar) IsSynthetic(name string) bool {
	return g != nil && g.synthetic[name]
}

func (g *Grammar) markSynthetic(name string) {
	g.synthetic[name] = true
}

// Comments returns the source comments recorded for name.
func (g *Grammar) Comments(name string) []string {
	if g == nil {
		return nil
	}

	return g.comments[name]
}

func (g *Grammar) addComments(name string, comments []string) {
	if len(comments) == 0 {
		return
	}

	g.comments[name] = append(g.comments[name], comments...)
}

// Terminals returns the bare terminal words used anywhere, sorted.
func (g *Grammar) Terminals() []string {
	return g.collect(func(s Symbol) bool { return s.Kind == Terminal && !s.IsLiteral() })
}

// Literals returns the quoted literal terminals used anywhere, sorted.
func (g *Grammar) Literals() []string {
	return g.collect(Symbol.IsLiteral)
}

// Undefined returns nonterminals referenced on a right-hand side that have
// no entry of their own, sorted.
func (g *Grammar) Undefined() []string {
	return g.collect(func(s Symbol) bool { return s.Kind == Nonterminal && !g.Has(s.Name) })
}

func (g *Grammar) collect(keep func(Symbol) bool) []string {
	seen := make(map[string]bool)

	for _, name := range g.Names() {
		set, _ := g.Get(name)
		for _, seq := range set.Sequences() {
			for _, sym := range seq {
				if keep(sym) {
					seen[sym.Name] = true
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// Map returns a plain copy: nonterminal name to alternatives, each
// alternative a list of symbol names.
func (g *Grammar) Map() map[string][][]string {
	out := make(map[string][][]string, g.Len())

	for _, name := range g.Names() {
		set, _ := g.Get(name)
		out[name] = set.Strings()
	}

	return out
}
