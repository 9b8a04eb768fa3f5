package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF    TokenType = iota // sentinel: end of input
	NUMBER                  // decimal integer literal
	PUNCT                   // '+' or '-'
)

var tokenNames = [...]string{
	EOF:    "EOF",
	NUMBER: "NUMBER",
	PUNCT:  "PUNCT",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Value  int64  // parsed value, NUMBER only
	Pos    int    // 0-based byte offset into the source
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return fmt.Sprintf("EOF at %d", t.Pos)
	case NUMBER:
		return fmt.Sprintf("NUMBER(%d) at %d", t.Value, t.Pos)
	}
	return fmt.Sprintf("%s(%q) at %d", t.Type, t.Lexeme, t.Pos)
}

// Cursor walks a token slice front to back. It never modifies the slice.
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor returns a cursor positioned on the first token.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the current token. Past the end of a slice that lacks a
// trailing EOF it reports a synthetic EOF.
func (c *Cursor) Peek() Token {
	if c.pos >= len(c.tokens) {
		end := 0
		if n := len(c.tokens); n > 0 {
			last := c.tokens[n-1]
			end = last.Pos + len(last.Lexeme)
		}
		return Token{Type: EOF, Pos: end}
	}
	return c.tokens[c.pos]
}

// AtEOF reports whether the current token is the end of input.
func (c *Cursor) AtEOF() bool {
	return c.Peek().Type == EOF
}

func (c *Cursor) advance() {
	if c.pos < len(c.tokens) {
		c.pos++
	}
}

// Consume advances past the current token if it is the punctuator op.
// Otherwise the cursor stays put and a *GrammarError is returned.
func (c *Cursor) Consume(op string) error {
	tok := c.Peek()
	if tok.Type != PUNCT || tok.Lexeme != op {
		return &GrammarError{Expected: fmt.Sprintf("%q", op), Found: tok}
	}
	c.advance()
	return nil
}

// ExpectNumber returns the value of the current NUMBER token and advances.
func (c *Cursor) ExpectNumber() (int64, error) {
	tok := c.Peek()
	if tok.Type != NUMBER {
		return 0, &GrammarError{Expected: "a number", Found: tok}
	}
	c.advance()
	return tok.Value, nil
}
