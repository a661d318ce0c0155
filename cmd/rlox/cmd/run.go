package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/will14smith/rlox/pkg/interp"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Interpret a Lox script",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	program, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	if err := interp.New().Interpret(program); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		return &exitError{code: exitRuntime}
	}
	return nil
}
