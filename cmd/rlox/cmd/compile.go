package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/will14smith/rlox/pkg/codegen"
)

var (
	compileOutput string
	compileStrict bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <script>",
	Short: "Translate a Lox script to a standalone Go program",
	Long: `Parses the script and emits an equivalent Go main package on stdout
or into the file given with --output. Constructs the backend cannot express
are skipped with a warning; --strict turns skipped constructs into a
failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the generated Go source to this file instead of stdout")
	compileCmd.Flags().BoolVar(&compileStrict, "strict", false, "fail on skipped constructs instead of warning")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	program, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	result, err := codegen.Generate(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return &exitError{code: 1}
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s: %s\n", skipped.Name, skipped.Reason)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	if compileStrict && (len(result.Skipped) > 0 || len(result.Warnings) > 0) {
		fmt.Fprintln(os.Stderr, "Error: --strict mode enabled, refusing to emit with skipped constructs")
		return &exitError{code: exitDataError}
	}

	if compileOutput == "" {
		fmt.Print(result.Code)
		return nil
	}
	if err := os.WriteFile(compileOutput, []byte(result.Code), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return &exitError{code: 1}
	}
	return nil
}
