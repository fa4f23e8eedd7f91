package bnf

// Expr is a rule body reduced to the constructs the engine evaluates. The set
// of variants is closed: Atom, Concat, Union, Optional, Group and Repeat.
type Expr interface {
	expr()
}

// Atom is a single symbol.
type Atom struct {
	Symbol Symbol
}

// Concat is a positional sequence. An empty Concat denotes ε.
type Concat struct {
	Items []Expr
}

// Union is a choice between alternatives. An empty Union has no
// alternatives at all.
type Union struct {
	Alts []Expr
}

// Optional is a [ ... ] group.
type Optional struct {
	Body Expr
}

// Group is a { ... } group; it picks exactly one of its alternatives.
type Group struct {
	Body Expr
}

// Repeat is one or more occurrences of Body, written with a trailing "...".
type Repeat struct {
	Body Expr
}

func (Atom) expr()     {}
func (Concat) expr()   {}
func (Union) expr()    {}
func (Optional) expr() {}
func (Group) expr()    {}
func (Repeat) expr()   {}

// Lower converts a parsed rule body into an expression.
func Lower(r *Rule) Expr {
	return lowerAlternatives(r.Alternatives)
}

func lowerAlternatives(alts []*Alternative) Union {
	u := Union{Alts: make([]Expr, len(alts))}
	for i, a := range alts {
		u.Alts[i] = lowerAlternative(a)
	}

	return u
}

func lowerAlternative(a *Alternative) Concat {
	c := Concat{Items: make([]Expr, len(a.Elements))}
	for i, e := range a.Elements {
		c.Items[i] = lowerElement(e)
	}

	return c
}

func lowerElement(e *Element) Expr {
	var x Expr

	switch {
	case e.Nonterminal != nil:
		x = Atom{Symbol: NewNonterminal(*e.Nonterminal)}
	case e.Terminal != nil:
		x = Atom{Symbol: NewTerminal(*e.Terminal)}
	case e.Literal != nil:
		x = Atom{Symbol: NewTerminal(*e.Literal)}
	case e.Optional != nil:
		x = Optional{Body: lowerAlternatives(e.Optional.Alternatives)}
	case e.Group != nil:
		x = Group{Body: lowerAlternatives(e.Group.Alternatives)}
	default:
		x = Concat{}
	}

	if e.Repeat {
		return Repeat{Body: x}
	}

	return x
}
