package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cc1/pkg/compiler"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Compile(t *testing.T) {
	out, _, err := execute(t, "3+2-1")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	want := ".intel_syntax noprefix\n.global main\nmain:\n  mov rax, 3\n  add rax, 2\n  sub rax, 1\n  ret\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestRoot_UsageError(t *testing.T) {
	for _, args := range [][]string{{}, {"1", "2"}} {
		out, _, err := execute(t, args...)
		var uErr *UsageError
		if !errors.As(err, &uErr) {
			t.Errorf("args %v: expected *UsageError, got %v", args, err)
		}
		if out != "" {
			t.Errorf("args %v: unexpected output %q", args, out)
		}
	}
}

func TestRoot_CompileErrors(t *testing.T) {
	tests := []struct {
		args   []string
		target any
	}{
		{[]string{"1 + a"}, new(*compiler.LexError)},
		{[]string{"+ - +"}, new(*compiler.GrammarError)},
		{[]string{"--single-digit", "12"}, new(*compiler.GrammarError)},
	}
	for _, tt := range tests {
		out, _, err := execute(t, tt.args...)
		if !errors.As(err, tt.target) {
			t.Errorf("%v: unexpected error %T: %v", tt.args, err, err)
		}
		if out != "" {
			t.Errorf("%v: nothing should be written on failure, got %q", tt.args, out)
		}
	}
}

func TestRoot_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.s")
	out, _, err := execute(t, "-o", path, "42")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty with -o, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "  mov rax, 42\n") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestRoot_Run(t *testing.T) {
	_, stderr, err := execute(t, "--run", "5+20-4")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if strings.TrimSpace(stderr) != "21" {
		t.Errorf("expected 21 on stderr, got %q", stderr)
	}
}

func TestRoot_Verbose(t *testing.T) {
	_, stderr, err := execute(t, "-v", "1+1")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr, "msg=token") || !strings.Contains(stderr, "type=PUNCT") {
		t.Errorf("expected a token trace, got:\n%s", stderr)
	}
}
