package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
)

var parseCmd = &cobra.Command{
	Use:   "parse <moves>",
	Short: "Show how a move string is read",
	Long: `Parse a whitespace-separated move string and list the moves it yields.
Tokens that are not valid moves are reported and would be skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	moves, dropped := cubesim.ParseMovesReport(strings.Join(args, " "))

	fmt.Fprintf(out, "Moves (%d): %s\n", len(moves), cubesim.FormatMoves(moves))
	for i, m := range moves {
		fmt.Fprintf(out, "  %2d  %-3s %s %s\n", i+1, m.Notation(), m.Side, m.Direction)
	}
	if len(dropped) > 0 {
		fmt.Fprintf(out, "Skipped (%d): %s\n", len(dropped), strings.Join(dropped, " "))
	}
	return nil
}
