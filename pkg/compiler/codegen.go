package compiler

import (
	"fmt"
	"math"
	"strings"
)

// Accumulator is the register that holds the running value and, on return,
// the result of main.
const Accumulator = "rax"

type driverState int

const (
	expectNumber driverState = iota
	expectOperatorOrEnd
)

// CodeGen walks a token slice and emits x86-64 assembly source text.
type CodeGen struct {
	cur   *Cursor
	state driverState
	out   strings.Builder
}

func newCodeGen(tokens []Token) *CodeGen {
	return &CodeGen{cur: NewCursor(tokens), state: expectNumber}
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, "  "+format+"\n", args...)
}

// operand reads the NUMBER following an operator and checks that it fits
// the sign-extended 32-bit immediate of add and sub.
func (cg *CodeGen) operand() (int64, error) {
	tok := cg.cur.Peek()
	n, err := cg.cur.ExpectNumber()
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, &CodegenError{Token: tok, Reason: "immediate does not fit in 32 bits"}
	}
	return n, nil
}

func (cg *CodeGen) run() error {
	for {
		switch cg.state {
		case expectNumber:
			n, err := cg.cur.ExpectNumber()
			if err != nil {
				return err
			}
			cg.line("mov %s, %d", Accumulator, n)
			cg.state = expectOperatorOrEnd

		case expectOperatorOrEnd:
			if cg.cur.AtEOF() {
				return nil
			}

			op := "sub"
			if err := cg.cur.Consume("+"); err == nil {
				op = "add"
			} else if err := cg.cur.Consume("-"); err != nil {
				return &GrammarError{Expected: `"+" or "-"`, Found: cg.cur.Peek()}
			}

			n, err := cg.operand()
			if err != nil {
				return err
			}
			cg.line("%s %s, %d", op, Accumulator, n)
		}
	}
}

// Generate drives tokens through the expression grammar and returns the
// instructions that compute its value in rax, one per line. The framing
// around them (directives, label, ret) is added by Compile.
// On error nothing is returned.
func Generate(tokens []Token) (string, error) {
	cg := newCodeGen(tokens)
	if err := cg.run(); err != nil {
		return "", err
	}
	return cg.out.String(), nil
}
