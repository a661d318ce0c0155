package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/will14smith/rlox/pkg/ast"
)

var astCmd = &cobra.Command{
	Use:   "ast <script>",
	Short: "Parse a Lox script and print its canonical form",
	Long: `Parses the script and prints it back as normalized Lox source.
For loops appear in their desugared while form. With parse errors the
successfully parsed declarations are still printed after the diagnostics.`,
	Args: cobra.ExactArgs(1),
	RunE: runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAst(cmd *cobra.Command, args []string) error {
	program, err := loadProgram(args[0])
	if err != nil {
		// Best-effort output for tooling: print what did parse.
		if program != nil {
			fmt.Print(ast.Print(program))
		}
		return err
	}

	fmt.Print(ast.Print(program))
	return nil
}
