package cmd

import (
	"fmt"
	"os"

	"github.com/golox/lox/pkg/lox"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a lox script or an inline expression",
	Long: `Execute a lox program from a file or inline source.

Examples:
  # Run a script file
  lox run script.lox

  # Evaluate inline source
  lox run -e "print \"Hello, world!\";"

  # Dump the parsed AST before running
  lox run --dump-ast script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST as JSON before running")
}

func runScript(_ *cobra.Command, args []string) error {
	var src, filename string
	switch {
	case evalExpr != "":
		src, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filename, err)
		}
		src = string(content)
	default:
		return fmt.Errorf("either provide a script path or use -e for inline source")
	}

	if dumpAST {
		if err := dumpProgramAST(os.Stdout, src); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "running %s\n", filename)
	}

	code := lox.NewSession(os.Stdout, os.Stderr).Run(src)
	if code != lox.ExitOK {
		return exitError(code)
	}
	return nil
}
