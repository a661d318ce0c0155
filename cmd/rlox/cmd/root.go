// Package cmd implements the rlox command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
	"github.com/will14smith/rlox/pkg/parser"
)

// Exit codes, sysexits-style: the same codes the original driver used.
const (
	exitOK        = 0
	exitNoInput   = 65 // source file could not be read
	exitDataError = 66 // scan or parse errors
	exitRuntime   = 70 // runtime error
)

var rootCmd = &cobra.Command{
	Use:   "rlox",
	Short: "rlox - a Lox interpreter and compiler",
	Long: `rlox scans, parses, interprets and compiles programs written in the
Lox scripting language.

Commands:
  run      - interpret a script
  repl     - start an interactive session
  ast      - parse a script and print its canonical form
  compile  - translate a script to a standalone Go program`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return exitOK
}

// exitError carries a process exit code out of a command. The diagnostics
// are already printed by the time it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// loadProgram reads, scans and parses a source file, reporting every scan
// and parse error to stderr. A non-nil error means the program is unusable.
func loadProgram(path string) (ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read source file: %v\n", err)
		return nil, &exitError{code: exitNoInput}
	}

	tokens, scanErrs := lexer.New(string(source)).Tokenize()
	program, parseErrs := parser.Parse(tokens)

	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		for i := range scanErrs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", &scanErrs[i])
		}
		for i := range parseErrs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", &parseErrs[i])
		}
		return program, &exitError{code: exitDataError}
	}

	return program, nil
}
