// Command lox is the golox CLI: a REPL by default, a script runner with
// one positional argument, and the run/ast/version subcommands for
// everything else.
package main

import (
	"os"

	"github.com/golox/lox/cmd/lox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
