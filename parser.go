package bnf

import (
	"github.com/alecthomas/participle/v2"
)

// bnfLexer is the custom lexer for standards-style BNF.
// Implements lexer.Definition for full control over rule-name detection.
var bnfLexer = newBNFLexer()

var parser = participle.MustBuild[File](
	participle.Lexer(bnfLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse parses BNF grammar source and returns its rule blocks with comments
// attached. This function is thread-safe.
//
// On failure the returned error is a *SyntaxError and no partial file is
// returned.
func Parse(data []byte) (*File, error) {
	return ParseNamed("", data)
}

// ParseNamed is like Parse but records filename in token positions.
func ParseNamed(filename string, data []byte) (*File, error) {
	// Lock to ensure trivia isn't overwritten by concurrent parses
	bnfLexer.Lock()
	defer bnfLexer.Unlock()

	file, err := parser.ParseBytes(filename, data)
	if err != nil {
		return nil, newSyntaxError(err)
	}

	attachComments(file, bnfLexer.Trivia())

	return file, nil
}

// Validate checks that data is well-formed BNF without expanding it.
// It accepts and rejects exactly the sources Convert can parse.
func Validate(data []byte) error {
	_, err := Parse(data)

	return err
}

// ExportedLexer returns the lexer definition for testing purposes.
//
//nolint:revive // unexported-return: intentionally returns unexported type for internal test use
func ExportedLexer() *bnfDefinition {
	return bnfLexer
}
