package bnf

import (
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token type constants - negative values as per participle convention.
// Exported for use by tooling that walks the raw token stream.
const (
	TokenEOF         lexer.TokenType = lexer.EOF
	TokenComment     lexer.TokenType = -(iota + 2) //nolint:mnd // participle convention
	TokenWhitespace                                // spaces, tabs, newlines
	TokenRuleName                                  // <name> introducing a rule
	TokenNonterminal                               // <name> reference
	TokenTerminal                                  // bare word
	TokenLiteral                                   // quoted literal, kept verbatim
	TokenDefines                                   // ::=
	TokenBar                                       // |
	TokenLBracket                                  // [
	TokenRBracket                                  // ]
	TokenLBrace                                    // {
	TokenRBrace                                    // }
	TokenEllipsis                                  // ...
)

const (
	definesOp   = "::="
	ellipsisOp  = "..."
	commentMark = "!!"
)

// Lexer errors.
var (
	ErrUnterminatedLiteral     = &LexerError{msg: "unterminated literal"}
	ErrUnterminatedNonterminal = &LexerError{msg: "unterminated nonterminal"}
	ErrUnexpectedCharacter     = &LexerError{msg: "unexpected character"}
)

// LexerError represents a lexer error with position.
type LexerError struct {
	msg string
	pos lexer.Position
	ch  rune
}

func (e *LexerError) Error() string {
	return e.pos.String() + ": " + e.Message()
}

// Message returns the error text without the position prefix.
func (e *LexerError) Message() string {
	if e.ch != 0 {
		return e.msg + ": " + string(e.ch)
	}

	return e.msg
}

// Position returns where the error occurred.
func (e *LexerError) Position() lexer.Position {
	return e.pos
}

// Is reports whether target is the sentinel this error was derived from.
func (e *LexerError) Is(target error) bool {
	t, ok := target.(*LexerError)

	return ok && t.msg == e.msg
}

func (e *LexerError) withPos(pos lexer.Position) *LexerError {
	return &LexerError{msg: e.msg, pos: pos, ch: e.ch}
}

func (e *LexerError) withChar(ch rune) *LexerError {
	return &LexerError{msg: e.msg, pos: e.pos, ch: ch}
}

// bnfDefinition implements lexer.Definition for standards-style BNF.
type bnfDefinition struct {
	symbols map[string]lexer.TokenType
	// lastTrivia holds trivia from the most recent lex operation.
	lastTrivia *TriviaList
	// mu protects lastTrivia for concurrent access.
	mu sync.Mutex
}

func newBNFLexer() *bnfDefinition {
	return &bnfDefinition{
		symbols: map[string]lexer.TokenType{
			"EOF":         TokenEOF,
			"Comment":     TokenComment,
			"Whitespace":  TokenWhitespace,
			"RuleName":    TokenRuleName,
			"Nonterminal": TokenNonterminal,
			"Terminal":    TokenTerminal,
			"Literal":     TokenLiteral,
			"Defines":     TokenDefines,
			"Bar":         TokenBar,
			"Ellipsis":    TokenEllipsis,
			"[":           TokenLBracket,
			"]":           TokenRBracket,
			"{":           TokenLBrace,
			"}":           TokenRBrace,
		},
	}
}

// Symbols returns the mapping of symbol names to token types.
func (d *bnfDefinition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

// Lex creates a new Lexer for the given reader.
//
//nolint:ireturn // Required by participle's lexer.Definition interface.
func (d *bnfDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return d.LexBytes(filename, data)
}

// LexBytes implements lexer.BytesDefinition.
//
//nolint:ireturn // Required by participle's lexer.BytesDefinition interface.
func (d *bnfDefinition) LexBytes(filename string, data []byte) (lexer.Lexer, error) {
	return d.LexString(filename, string(data))
}

// LexString implements lexer.StringDefinition.
//
//nolint:ireturn // Required by participle's lexer.StringDefinition interface.
func (d *bnfDefinition) LexString(filename string, input string) (lexer.Lexer, error) {
	trivia := &TriviaList{}
	d.lastTrivia = trivia

	return newLexerState(filename, input, trivia), nil
}

// Trivia returns the comments collected by the last lex operation.
// Use Lock/Unlock around Parse and Trivia calls for thread-safe access.
func (d *bnfDefinition) Trivia() *TriviaList {
	return d.lastTrivia
}

// Lock acquires the mutex for thread-safe parse+trivia access.
func (d *bnfDefinition) Lock() {
	d.mu.Lock()
}

// Unlock releases the mutex.
func (d *bnfDefinition) Unlock() {
	d.mu.Unlock()
}

type lexerState struct {
	filename string
	input    string
	offset   int
	line     int
	col      int
	trivia   *TriviaList
}

func newLexerState(filename, input string, trivia *TriviaList) *lexerState {
	return &lexerState{
		filename: filename,
		input:    input,
		line:     1,
		col:      1,
		trivia:   trivia,
	}
}

// Next returns the next token.
func (l *lexerState) Next() (lexer.Token, error) {
	if l.eof() {
		return lexer.EOFToken(l.pos()), nil
	}

	start := l.pos()
	r := l.peek()

	if isSpace(r) {
		for !l.eof() && isSpace(l.peek()) {
			l.advance()
		}

		return l.token(TokenWhitespace, start), nil
	}

	if l.match(commentMark) {
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}

		tok := l.token(TokenComment, start)

		if l.trivia != nil {
			l.trivia.Add(Trivia{
				Type: TriviaComment,
				Text: strings.TrimSpace(strings.TrimPrefix(tok.Value, commentMark)),
				Span: Span{Start: start, End: l.pos()},
			})
		}

		return tok, nil
	}

	if r == '<' {
		return l.scanNonterminal(start)
	}

	if r == '"' || r == '\'' {
		return l.scanLiteral(start, r)
	}

	if isWordStart(r) {
		for !l.eof() && isWordContinue(l.peek()) {
			l.advance()
		}

		return l.token(TokenTerminal, start), nil
	}

	if l.match(definesOp) {
		l.advanceN(len(definesOp))

		return l.token(TokenDefines, start), nil
	}

	if l.match(ellipsisOp) {
		l.advanceN(len(ellipsisOp))

		return l.token(TokenEllipsis, start), nil
	}

	l.advance()

	switch r {
	case '|':
		return l.token(TokenBar, start), nil
	case '[':
		return l.token(TokenLBracket, start), nil
	case ']':
		return l.token(TokenRBracket, start), nil
	case '{':
		return l.token(TokenLBrace, start), nil
	case '}':
		return l.token(TokenRBrace, start), nil
	}

	return lexer.Token{}, ErrUnexpectedCharacter.withPos(start).withChar(r)
}

// scanNonterminal reads <name>. The token is a RuleName when the next
// non-whitespace input is "::=".
func (l *lexerState) scanNonterminal(start lexer.Position) (lexer.Token, error) {
	l.advance() // <

	for !l.eof() {
		ch := l.peek()

		if ch == '>' {
			l.advance()

			tok := l.token(TokenNonterminal, start)
			if l.definesFollows() {
				tok.Type = TokenRuleName
			}

			return tok, nil
		}

		if ch == '\n' || ch == '<' {
			break
		}

		l.advance()
	}

	return lexer.Token{}, ErrUnterminatedNonterminal.withPos(start)
}

func (l *lexerState) definesFollows() bool {
	rest := strings.TrimLeftFunc(l.input[l.offset:], isSpace)

	return strings.HasPrefix(rest, definesOp)
}

func (l *lexerState) scanLiteral(start lexer.Position, quote rune) (lexer.Token, error) {
	l.advance() // opening quote

	for !l.eof() {
		ch := l.peek()
		if ch == '\\' && l.peekAt(1) != 0 && l.peekAt(1) != '\n' {
			l.advance() // backslash
			l.advance() // escaped char

			continue
		}

		if ch == quote {
			l.advance() // closing quote

			return l.token(TokenLiteral, start), nil
		}

		if ch == '\n' {
			break
		}

		l.advance()
	}

	return lexer.Token{}, ErrUnterminatedLiteral.withPos(start)
}

func (l *lexerState) pos() lexer.Position {
	return lexer.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.col,
	}
}

func (l *lexerState) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

//nolint:unparam // n is always 1 currently but kept for flexibility.
func (l *lexerState) peekAt(n int) rune {
	off := l.offset
	for range n {
		if off >= len(l.input) {
			return 0
		}

		_, size := utf8.DecodeRuneInString(l.input[off:])
		off += size
	}

	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexerState) advanceN(n int) {
	for range n {
		l.advance()
	}
}

func (l *lexerState) match(s string) bool {
	return strings.HasPrefix(l.input[l.offset:], s)
}

func (l *lexerState) token(typ lexer.TokenType, start lexer.Position) lexer.Token {
	return lexer.Token{
		Type:  typ,
		Value: l.input[start.Offset:l.offset],
		Pos:   start,
	}
}

// Character helpers.

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
