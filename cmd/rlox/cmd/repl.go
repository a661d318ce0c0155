package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/will14smith/rlox/pkg/interp"
	"github.com/will14smith/rlox/pkg/lexer"
	"github.com/will14smith/rlox/pkg/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	Long: `Reads one line at a time, parses it and executes it against a
persistent interpreter, so variables and functions survive between lines.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	in := bufio.NewScanner(os.Stdin)
	interpreter := interp.New()

	for {
		fmt.Print("lox> ")
		if !in.Scan() {
			fmt.Println()
			return in.Err()
		}

		line := in.Text()
		if line == "" {
			continue
		}

		tokens, scanErrs := lexer.New(line).Tokenize()
		if len(scanErrs) > 0 {
			for i := range scanErrs {
				fmt.Fprintf(os.Stderr, "Error: %v\n", &scanErrs[i])
			}
			continue
		}

		program, parseErrs := parser.Parse(tokens)
		if len(parseErrs) > 0 {
			for i := range parseErrs {
				fmt.Fprintf(os.Stderr, "Error: %v\n", &parseErrs[i])
			}
			continue
		}

		if err := interpreter.Interpret(program); err != nil {
			fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		}
	}
}
