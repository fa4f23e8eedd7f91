package bnf

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// Sequence is one right-hand side: symbols in source order.
type Sequence []Symbol

// Key returns a string that identifies the sequence by content. Keys of
// equal sequences are equal, and sorting keys orders sequences by their
// symbol names first.
func (s Sequence) Key() string {
	var b strings.Builder

	for i, sym := range s {
		if i > 0 {
			b.WriteByte('\x01')
		}

		b.WriteString(sym.Name)
		b.WriteByte('\x00')
		b.WriteByte(byte('0' + sym.Kind))
	}

	return b.String()
}

// Names returns the display names of the symbols.
func (s Sequence) Names() []string {
	names := make([]string, len(s))
	for i, sym := range s {
		names[i] = sym.Name
	}

	return names
}

func (s Sequence) String() string {
	if len(s) == 0 {
		return "ε"
	}

	return strings.Join(s.Names(), " ")
}

// concat returns a new sequence; neither input is aliased.
func (s Sequence) concat(o Sequence) Sequence {
	out := make(Sequence, 0, len(s)+len(o))
	out = append(out, s...)

	return append(out, o...)
}

// AltSet is an immutable set of sequences. The zero value is the empty set.
// Every operation returns a new set and leaves its operands untouched.
type AltSet struct {
	m *treemap.Map
}

// EmptySet returns the set with no alternatives.
func EmptySet() AltSet {
	return AltSet{}
}

// Epsilon returns the set holding only the empty sequence.
func Epsilon() AltSet {
	return NewAltSet(Sequence{})
}

// AtomSet returns { [sym] }.
func AtomSet(sym Symbol) AltSet {
	return NewAltSet(Sequence{sym})
}

// NewAltSet builds a set from sequences; duplicates collapse.
func NewAltSet(seqs ...Sequence) AltSet {
	m := treemap.NewWithStringComparator()
	for _, s := range seqs {
		m.Put(s.Key(), s)
	}

	return AltSet{m: m}
}

// Len returns the number of distinct sequences.
func (a AltSet) Len() int {
	if a.m == nil {
		return 0
	}

	return a.m.Size()
}

// Contains reports whether seq is a member.
func (a AltSet) Contains(seq Sequence) bool {
	if a.m == nil {
		return false
	}

	_, ok := a.m.Get(seq.Key())

	return ok
}

// Nullable reports whether the empty sequence is a member.
func (a AltSet) Nullable() bool {
	return a.Contains(Sequence{})
}

// Sequences returns the members ordered by Key.
func (a AltSet) Sequences() []Sequence {
	if a.m == nil {
		return nil
	}

	out := make([]Sequence, 0, a.m.Size())

	it := a.m.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Sequence)) //nolint:forcetypeassert // only Sequences are stored
	}

	return out
}

// Strings returns the members as lists of symbol names, ordered by Key.
func (a AltSet) Strings() [][]string {
	seqs := a.Sequences()

	out := make([][]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.Names()
	}

	return out
}

// Equal reports whether both sets hold the same sequences.
func (a AltSet) Equal(o AltSet) bool {
	if a.Len() != o.Len() {
		return false
	}

	for _, s := range a.Sequences() {
		if !o.Contains(s) {
			return false
		}
	}

	return true
}

func (a AltSet) String() string {
	seqs := a.Sequences()

	parts := make([]string, len(seqs))
	for i, s := range seqs {
		parts[i] = s.String()
	}

	return "{" + strings.Join(parts, " | ") + "}"
}

// Union returns a ∪ b.
func (a AltSet) Union(b AltSet) AltSet {
	out := NewAltSet(a.Sequences()...)
	for _, s := range b.Sequences() {
		out.m.Put(s.Key(), s)
	}

	return out
}

// Concat returns { x ++ y : x ∈ a, y ∈ b }. Symbol order inside each
// sequence is preserved. Concatenating with the empty set yields the empty
// set.
func (a AltSet) Concat(b AltSet) AltSet {
	out := NewAltSet()

	for _, x := range a.Sequences() {
		for _, y := range b.Sequences() {
			s := x.concat(y)
			out.m.Put(s.Key(), s)
		}
	}

	return out
}

// Optional returns a ∪ {ε}.
func (a AltSet) Optional() AltSet {
	return a.Union(Epsilon())
}
