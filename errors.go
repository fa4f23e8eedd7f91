package bnf

import (
	"errors"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrTooManyAlternatives is returned when expanding a rule produces more
// alternatives than the engine was configured to allow.
var ErrTooManyAlternatives = errors.New("too many alternatives")

// SyntaxError reports grammar source that does not match the BNF notation.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
	err error
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Unwrap returns the underlying lexer or parser error.
func (e *SyntaxError) Unwrap() error {
	return e.err
}

// positioned is satisfied by participle.Error and *LexerError.
type positioned interface {
	Position() lexer.Position
	Message() string
}

func newSyntaxError(err error) *SyntaxError {
	var pe positioned
	if errors.As(err, &pe) {
		return &SyntaxError{Pos: pe.Position(), Msg: pe.Message(), err: err}
	}

	return &SyntaxError{Msg: err.Error(), err: err}
}
