package compiler

import (
	"strconv"
	"unicode/utf8"
)

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src         string
	pos         int  // index of the next byte to consume
	singleDigit bool // every digit is a literal of its own
}

func newLexer(src string, opts Options) *Lexer {
	return &Lexer{src: src, singleDigit: opts.SingleDigit}
}

// peek returns the byte at the current position without advancing.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.peek()) {
		l.pos++
	}
}

// scanNumber collects a decimal literal. The first digit must still be at
// l.peek().
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	l.pos++
	if !l.singleDigit {
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.pos++
		}
	}

	lexeme := l.src[start:l.pos]
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Token{}, &LexError{Pos: start, Char: rune(lexeme[0]), Reason: "number out of range: " + lexeme}
	}
	return Token{Type: NUMBER, Lexeme: lexeme, Value: val, Pos: start}, nil
}

// nextToken skips whitespace and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Lexeme: "", Pos: l.pos}, nil
	}

	ch := l.peek()
	if isDigit(ch) {
		return l.scanNumber()
	}

	start := l.pos
	switch ch {
	case '+', '-':
		l.pos++
		return Token{Type: PUNCT, Lexeme: l.src[start:l.pos], Pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return Token{}, &LexError{Pos: start, Char: r}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// On the first character outside digits, '+', '-' and whitespace it returns
// a *LexError and no tokens.
func Lex(src string) ([]Token, error) {
	return LexWith(src, Options{})
}

// LexWith is Lex with explicit options. Only opts.SingleDigit is consulted.
func LexWith(src string, opts Options) ([]Token, error) {
	l := newLexer(src, opts)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
