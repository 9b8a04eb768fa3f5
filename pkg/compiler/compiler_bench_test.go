package compiler

import (
	"strconv"
	"strings"
	"testing"
)

// simpleSource is the smallest expression with both operators.
const simpleSource = "3+2-1"

// longSource is a few thousand terms, well past any realistic command line.
var longSource = func() string {
	var sb strings.Builder
	sb.WriteString("1000")
	for i := 0; i < 4000; i++ {
		if i%2 == 0 {
			sb.WriteString(" + ")
		} else {
			sb.WriteString(" - ")
		}
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}()

func BenchmarkLex_Simple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Lex(simpleSource)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLex_Long(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Lex(longSource)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// Tokens are pre-computed outside the timed region.
func BenchmarkGenerate_Long(b *testing.B) {
	tokens, err := Lex(longSource)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Generate(tokens)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompile_Simple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Compile(simpleSource, Options{})
		if err != nil {
			b.Fatal(err)
		}
	}
}
