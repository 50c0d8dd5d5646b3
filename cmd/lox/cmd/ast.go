package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golox/lox/internal/astutil"
	"github.com/golox/lox/internal/diag"
	"github.com/golox/lox/internal/lexer"
	"github.com/golox/lox/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var astQuery string

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Dump a script's parsed AST as JSON",
	Long: `Parse a lox script and print its AST as JSON, without resolving or
running it. Pass --query to extract a single value from the dump with a
gjson path instead of printing the whole tree.

Examples:
  lox ast script.lox
  lox ast --query "0.expr.name" script.lox`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVar(&astQuery, "query", "", "gjson path to extract from the AST dump instead of printing the whole tree")
}

func runAST(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	doc, err := astJSON(string(content), os.Stderr)
	if err != nil {
		return err
	}

	if astQuery != "" {
		result := gjson.Get(doc, astQuery)
		fmt.Println(result.String())
		return nil
	}

	fmt.Println(doc)
	return nil
}

// dumpProgramAST writes src's parsed AST as indented JSON to w, for the
// `run --dump-ast` flag. Parse errors are discarded here rather than
// reported a second time: the caller always goes on to run src through
// lox.Session.Run, which reports them properly; a program with parse
// errors has nothing sensible to dump, so the AST dump is just skipped.
func dumpProgramAST(w io.Writer, src string) error {
	doc, err := astJSON(src, io.Discard)
	if err != nil {
		return nil
	}
	fmt.Fprintln(w, doc)
	return nil
}

// astJSON runs just the scanner and parser over src (no resolver, no
// interpreter) and renders the result via internal/astutil.Dump. diags
// receives any lex/parse error output.
func astJSON(src string, diags io.Writer) (string, error) {
	report := diag.New(diags)

	l := lexer.New(src)
	tokens := l.ConsumeAll()
	for _, lexErr := range l.Errors() {
		report.Lex(lexErr.Line, lexErr.Message)
	}

	statements := parser.New(tokens, report).Parse()
	if report.HadCompileError() {
		return "", fmt.Errorf("parsing failed")
	}

	encoded, err := json.MarshalIndent(astutil.Dump(statements), "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
