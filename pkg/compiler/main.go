// Package compiler provides the lexer and expression driver of cc1, a
// compiler for additive integer expressions that targets x86-64 assembly
// in Intel syntax.
//
// Pipeline: expression → Lex → Generate → assembly text
//
// The supported grammar is
//
//	expression := NUMBER ( ('+'|'-') NUMBER )*
//
// and the generated code leaves the value of the expression in rax.
package compiler
