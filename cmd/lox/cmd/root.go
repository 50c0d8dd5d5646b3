// Package cmd implements the command-line surface sketched in spec.md
// §6: bare invocation launches the REPL, one positional argument runs a
// script file, and two or more is a usage error. It is built on cobra,
// following the teacher's cmd/dwscript/cmd layout (root command with
// persistent flags, one file per subcommand), and layers on a `run`
// subcommand (matching the teacher's own `run` flag surface: -e/
// --dump-ast) and an `ast` subcommand that dumps the JSON AST and
// supports gjson queries — two subcommands that only make sense once
// golox is driven explicitly rather than via the bare positional form.
package cmd

import (
	"fmt"
	"os"

	"github.com/golox/lox/internal/replio"
	"github.com/golox/lox/pkg/lox"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "A tree-walking interpreter for a small dynamic scripting language",
	Long: `golox is a tree-walking interpreter: scanner, recursive-descent
parser, static resolver, and evaluator over a small dynamically typed,
lexically scoped, object-oriented language.

Usage:
  lox              interactive REPL
  lox script.lox    run a script file
  lox run ...       run with additional flags (-e, --dump-ast)
  lox ast ...        dump a script's parsed AST as JSON`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runBare,
}

// Execute runs the root command and returns the process exit code,
// matching spec.md §6's exit codes (0 normal, 64 usage, 65 compile
// error, 70 runtime error) rather than cobra's default of always
// exiting 1 on error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitError); ok {
			return int(code)
		}
		fmt.Fprintln(os.Stderr, err)
		return int(lox.ExitUsage)
	}
	return int(lox.ExitOK)
}

// exitError carries a specific process exit code through cobra's plain
// `error` return value.
type exitError lox.ExitCode

func (e exitError) Error() string { return "" }

func runBare(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return replio.New(os.Stdout, os.Stderr).Run()
	case 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lox: %v\n", err)
			return exitError(lox.ExitUsage)
		}
		code := lox.NewSession(os.Stdout, os.Stderr).Run(string(content))
		if code != lox.ExitOK {
			return exitError(code)
		}
		return nil
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		return exitError(lox.ExitUsage)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
}
