package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesim"
)

var stateFormat string

var stateCmd = &cobra.Command{
	Use:   "state [moves]",
	Short: "Apply moves instantly and print the cube",
	Long: `Apply a move sequence to a solved cube without animation and print the
result as an unfolded net, JSON or YAML.

Examples:
  cubesim state "R U R' U'"
  cubesim state "F2" --format json
  cubesim state --dim 5 "U2 D2" --format yaml`,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().StringVarP(&stateFormat, "format", "f", "text", "Output format (text, json, yaml)")
}

func runState(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cube, err := cubesim.New(cfg.Dim)
	if err != nil {
		return err
	}
	cube.ApplyNotation(strings.Join(args, " "))

	switch stateFormat {
	case "text", "txt":
		fmt.Fprint(out, cube.String())
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cube.Snapshot()); err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cube.Snapshot()); err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", stateFormat)
	}
	return nil
}
