// Package cpu executes programs read by package asm on a minimal x86-64
// register model: 64-bit general registers, wrap-around arithmetic and a
// ret that halts the machine with its result in rax.
package cpu

import (
	"errors"
	"fmt"

	"cc1/pkg/asm"
)

// ErrStepLimit is returned by Run when the program does not halt in time.
var ErrStepLimit = errors.New("cpu: step limit reached")

type CPU struct {
	Regs map[string]int64

	PC   int
	Code []asm.Instruction

	Halted bool
	Steps  int
}

func NewCPU() *CPU {
	c := &CPU{Regs: make(map[string]int64, len(asm.Registers))}
	for r := range asm.Registers {
		c.Regs[r] = 0
	}
	return c
}

// Load resets the machine and points PC at the global label entry.
func (c *CPU) Load(prog *asm.Program, entry string) error {
	pc, err := prog.Entry(entry)
	if err != nil {
		return err
	}
	for r := range c.Regs {
		c.Regs[r] = 0
	}
	c.Code = prog.Instructions
	c.PC = pc
	c.Halted = false
	c.Steps = 0
	return nil
}

// Reg returns the value of a register.
func (c *CPU) Reg(name string) int64 {
	return c.Regs[name]
}

func (c *CPU) value(o asm.Operand) int64 {
	if o.IsImm() {
		return o.Imm
	}
	return c.Regs[o.Reg]
}

// Step executes one instruction.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}
	if c.PC < 0 || c.PC >= len(c.Code) {
		return fmt.Errorf("cpu: pc %d ran off the end of the program", c.PC)
	}

	in := c.Code[c.PC]
	c.PC++
	c.Steps++

	switch in.Mnemonic {
	case "ret":
		c.Halted = true
	case "mov":
		c.Regs[in.Operands[0].Reg] = c.value(in.Operands[1])
	case "add":
		c.Regs[in.Operands[0].Reg] += c.value(in.Operands[1])
	case "sub":
		c.Regs[in.Operands[0].Reg] -= c.value(in.Operands[1])
	default:
		return fmt.Errorf("cpu: line %d: unsupported instruction %s", in.Line, in)
	}
	return nil
}

// Run steps until the machine halts, an instruction fails, or limit steps
// have executed.
func (c *CPU) Run(limit int) error {
	for !c.Halted {
		if c.Steps >= limit {
			return ErrStepLimit
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Exec parses code, loads entry and runs it, returning rax.
func Exec(code, entry string, limit int) (int64, error) {
	prog, err := asm.Parse(code)
	if err != nil {
		return 0, err
	}
	c := NewCPU()
	if err := c.Load(prog, entry); err != nil {
		return 0, err
	}
	if err := c.Run(limit); err != nil {
		return 0, err
	}
	return c.Reg("rax"), nil
}
