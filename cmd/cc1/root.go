package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cc1/pkg/compiler"
	"cc1/pkg/cpu"
)

// runStepLimit bounds --run. A listing has one instruction per operand plus
// ret, so this is far above anything a command line can hold.
const runStepLimit = 1 << 20

// UsageError reports a malformed invocation. It is raised before any input
// is lexed.
type UsageError struct {
	Args []string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: expected exactly one expression argument, got %d", len(e.Args))
}

type options struct {
	output      string
	singleDigit bool
	run         bool
	verbose     bool
}

func exactlyOneExpr(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &UsageError{Args: args}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "cc1 EXPR",
		Short: "Compile an additive integer expression to x86-64 assembly",
		Long: `cc1 compiles an expression of non-negative integers joined by '+' and
'-' into an Intel-syntax x86-64 assembly listing for a main function that
returns the value of the expression in rax.

Example:
  cc1 '3+2-1' > out.s && cc -o out out.s && ./out; echo $?
`,
		Args:          exactlyOneExpr,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compile(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "write assembly to `file` instead of stdout")
	f.BoolVar(&opts.singleDigit, "single-digit", false, "lex every digit as its own literal")
	f.BoolVar(&opts.run, "run", false, "execute the listing and print rax to stderr")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log the token trace to stderr")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func compile(cmd *cobra.Command, expr string, opts options) error {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)

	assembly, err := compiler.Compile(expr, compiler.Options{
		SingleDigit: opts.singleDigit,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	if opts.run {
		rax, err := cpu.Exec(assembly, "main", runStepLimit)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		log.Debug("executed", "rax", rax)
		fmt.Fprintln(cmd.ErrOrStderr(), rax)
	}

	if opts.output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), assembly)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(assembly), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", opts.output, err)
	}
	return nil
}
