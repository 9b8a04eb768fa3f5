package compiler

import (
	"context"
	"log/slog"
	"strings"
)

// Options tune a compilation.
type Options struct {
	// SingleDigit makes the lexer treat every digit as a separate literal,
	// so "12" lexes as two NUMBER tokens and fails to parse.
	SingleDigit bool

	// Logger receives the token trace at debug level. Nil discards.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

const (
	prologue = ".intel_syntax noprefix\n.global main\nmain:\n"
	epilogue = "  ret\n"
)

// Compile turns an expression into a complete assembly listing for main.
func Compile(src string, opts Options) (string, error) {
	log := opts.logger()

	tokens, err := LexWith(src, opts)
	if err != nil {
		return "", err
	}

	if log.Enabled(context.Background(), slog.LevelDebug) {
		for i, tok := range tokens {
			log.Debug("token", "index", i, "type", tok.Type, "lexeme", tok.Lexeme, "value", tok.Value, "pos", tok.Pos)
		}
	}

	body, err := Generate(tokens)
	if err != nil {
		return "", err
	}
	log.Debug("generated", "tokens", len(tokens), "instructions", strings.Count(body, "\n"))

	var sb strings.Builder
	sb.WriteString(prologue)
	sb.WriteString(body)
	sb.WriteString(epilogue)
	return sb.String(), nil
}
