package bnf

import "github.com/alecthomas/participle/v2/lexer"

// Span represents a range in source code.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Trivia represents non-semantic tokens like comments.
type Trivia struct {
	Type TriviaType
	// Text is the comment body with the "!!" marker and surrounding space removed.
	Text string
	Span Span
}

// TriviaType distinguishes different kinds of trivia.
type TriviaType int

// TriviaType constants define the types of trivia.
const (
	// TriviaComment represents a "!!" comment running to the end of the line.
	TriviaComment TriviaType = iota
)

// TriviaList holds all trivia collected during lexing.
type TriviaList struct {
	items []Trivia
}

// Add appends trivia to the list.
func (t *TriviaList) Add(trivia Trivia) {
	t.items = append(t.items, trivia)
}

// All returns all collected trivia.
func (t *TriviaList) All() []Trivia {
	if t == nil {
		return nil
	}

	return t.items
}

// attachComments hands every comment to the rule whose text contains it.
// Comments before the first rule become file-level comments. Empty comments
// are dropped.
func attachComments(file *File, trivia *TriviaList) {
	if file == nil {
		return
	}

	for _, t := range trivia.All() {
		if t.Type != TriviaComment || t.Text == "" {
			continue
		}

		owner := ruleAt(file.Rules, t.Span.Start.Offset)
		if owner == nil {
			file.Comments = append(file.Comments, t.Text)

			continue
		}

		owner.Comments = append(owner.Comments, t.Text)
	}
}

// ruleAt returns the last rule starting at or before offset.
func ruleAt(rules []*Rule, offset int) *Rule {
	var owner *Rule

	for _, r := range rules {
		if r.Pos.Offset > offset {
			break
		}

		owner = r
	}

	return owner
}
