// Package asm reads the subset of GNU as Intel-syntax x86-64 assembly that
// cc1 emits, so that generated listings can be checked and executed.
package asm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Registers are the 64-bit general registers the reader accepts.
var Registers = map[string]bool{
	"rax": true,
	"rbx": true,
	"rcx": true,
	"rdx": true,
	"rsi": true,
	"rdi": true,
}

var twoOperandOps = map[string]bool{
	"mov": true,
	"add": true,
	"sub": true,
}

var zeroOperandOps = map[string]bool{
	"ret": true,
}

// Operand is either a register or an immediate.
type Operand struct {
	Reg string
	Imm int64
}

// IsImm reports whether the operand is an immediate.
func (o Operand) IsImm() bool { return o.Reg == "" }

func (o Operand) String() string {
	if o.IsImm() {
		return strconv.FormatInt(o.Imm, 10)
	}
	return o.Reg
}

// Instruction is one decoded source line.
type Instruction struct {
	Line     int
	Mnemonic string
	Operands []Operand
}

func (in Instruction) String() string {
	if len(in.Operands) == 0 {
		return in.Mnemonic
	}
	ops := make([]string, len(in.Operands))
	for i, o := range in.Operands {
		ops[i] = o.String()
	}
	return in.Mnemonic + " " + strings.Join(ops, ", ")
}

// Program is a parsed listing.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int // label -> index into Instructions
	Globals      []string
}

// Entry returns the instruction index of a label declared with .global.
func (p *Program) Entry(name string) (int, error) {
	global := false
	for _, g := range p.Globals {
		if g == name {
			global = true
			break
		}
	}
	if !global {
		return 0, fmt.Errorf("symbol '%s' is not declared .global", name)
	}
	idx, ok := p.Labels[name]
	if !ok {
		return 0, fmt.Errorf("undefined label '%s'", name)
	}
	return idx, nil
}

type parsedLine struct {
	lineNo   int
	labels   []string
	mnemonic string
	operands []string
}

// Parse reads an assembly listing.
func Parse(code string) (*Program, error) {
	p := &Program{Labels: make(map[string]int)}
	intel := false

	for i, raw := range strings.Split(code, "\n") {
		lineNo := i + 1
		pl, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, err
		}

		for _, lbl := range pl.labels {
			if _, exists := p.Labels[lbl]; exists {
				return nil, fmt.Errorf("duplicate label '%s' on line %d", lbl, lineNo)
			}
			p.Labels[lbl] = len(p.Instructions)
		}

		switch {
		case pl.mnemonic == "":
			continue

		case pl.mnemonic == ".intel_syntax":
			if len(pl.operands) != 1 || pl.operands[0] != "noprefix" {
				return nil, fmt.Errorf(".intel_syntax expects 'noprefix' on line %d", lineNo)
			}
			intel = true

		case pl.mnemonic == ".global" || pl.mnemonic == ".globl":
			if len(pl.operands) != 1 || !isIdentifier(pl.operands[0]) {
				return nil, fmt.Errorf("%s expects one symbol on line %d", pl.mnemonic, lineNo)
			}
			p.Globals = append(p.Globals, pl.operands[0])

		case strings.HasPrefix(pl.mnemonic, "."):
			return nil, fmt.Errorf("unsupported directive on line %d: %s", lineNo, pl.mnemonic)

		default:
			if !intel {
				return nil, fmt.Errorf("instruction before .intel_syntax noprefix on line %d", lineNo)
			}
			in, err := decode(pl)
			if err != nil {
				return nil, err
			}
			p.Instructions = append(p.Instructions, in)
		}
	}

	return p, nil
}

func decode(pl parsedLine) (Instruction, error) {
	in := Instruction{Line: pl.lineNo, Mnemonic: pl.mnemonic}

	switch {
	case zeroOperandOps[pl.mnemonic]:
		if len(pl.operands) != 0 {
			return in, fmt.Errorf("%s takes no operands on line %d", pl.mnemonic, pl.lineNo)
		}

	case twoOperandOps[pl.mnemonic]:
		if len(pl.operands) != 2 {
			return in, fmt.Errorf("%s expects two operands on line %d", pl.mnemonic, pl.lineNo)
		}
		dst, err := parseOperand(pl.operands[0], pl.lineNo)
		if err != nil {
			return in, err
		}
		if dst.IsImm() {
			return in, fmt.Errorf("destination of %s must be a register on line %d", pl.mnemonic, pl.lineNo)
		}
		src, err := parseOperand(pl.operands[1], pl.lineNo)
		if err != nil {
			return in, err
		}
		if src.IsImm() && pl.mnemonic != "mov" && (src.Imm > 1<<31-1 || src.Imm < -(1<<31)) {
			return in, fmt.Errorf("immediate %d out of 32-bit range on line %d", src.Imm, pl.lineNo)
		}
		in.Operands = []Operand{dst, src}

	default:
		return in, fmt.Errorf("unknown instruction on line %d: %s", pl.lineNo, pl.mnemonic)
	}

	return in, nil
}

func parseOperand(s string, lineNo int) (Operand, error) {
	if Registers[s] {
		return Operand{Reg: s}, nil
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return Operand{}, fmt.Errorf("invalid operand '%s' on line %d", s, lineNo)
	}
	return Operand{Imm: v}, nil
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(beforeColon, " \t") {
			break
		}

		if !isIdentifier(beforeColon) {
			return p, fmt.Errorf("invalid label '%s' on line %d", beforeColon, lineNo)
		}

		p.labels = append(p.labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	fields := strings.Fields(strings.ReplaceAll(line, ",", " , "))
	if len(fields) == 0 {
		return p, nil
	}

	p.mnemonic = strings.ToLower(fields[0])
	expectOperand := true
	for _, f := range fields[1:] {
		if f == "," {
			if expectOperand {
				return p, fmt.Errorf("missing operand on line %d", lineNo)
			}
			expectOperand = true
			continue
		}
		if !expectOperand {
			return p, fmt.Errorf("missing comma between operands on line %d", lineNo)
		}
		p.operands = append(p.operands, f)
		expectOperand = false
	}
	if expectOperand && len(p.operands) > 0 {
		return p, fmt.Errorf("trailing comma on line %d", lineNo)
	}

	return p, nil
}

func stripComments(line string) string {
	if hash := strings.IndexByte(line, '#'); hash >= 0 {
		return line[:hash]
	}
	return line
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '.' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}

	return true
}
