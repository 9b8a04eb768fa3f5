package compiler

import "fmt"

// LexError reports a character outside the supported alphabet or a literal
// that does not fit in an int64.
type LexError struct {
	Pos    int
	Char   rune
	Reason string
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("lex error at %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("lex error at %d: unrecognized character %q", e.Pos, e.Char)
}

// GrammarError reports a token that does not fit the expression grammar at
// the cursor position.
type GrammarError struct {
	Expected string
	Found    Token
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: expected %s, found %s", e.Expected, e.Found)
}

// CodegenError reports a well-formed expression that cannot be encoded.
type CodegenError struct {
	Token  Token
	Reason string
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("codegen error: %s: %s", e.Token, e.Reason)
}
