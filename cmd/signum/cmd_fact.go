package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"signum/internal/host/manglehost"
)

// =============================================================================
// FACT COMMAND - sign every argument of a Mangle fact
// =============================================================================

var factCmd = &cobra.Command{
	Use:   "fact [atom]",
	Short: "Print the sign of each argument of a Mangle fact",
	Long: `Parses a single Mangle atom and prints one line per argument.

Example:
  signum fact 'reading(/probe, -2.5, 0)'`,
	Args: cobra.ExactArgs(1),
	RunE: runFact,
}

func runFact(cmd *cobra.Command, args []string) error {
	evaluator := manglehost.New(evaluatorOptions()...)

	signs, err := manglehost.SignsOfAtom(evaluator, args[0])
	if err != nil {
		return err
	}

	failed := 0
	for _, as := range signs {
		if as.Err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s\terror: %v\n", as.Term, as.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", as.Term, formatResult(as.Result))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d arguments have no sign", failed, len(signs))
	}
	return nil
}
