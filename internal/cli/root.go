// Package cli implements the command-line interface for cubesim.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesim/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	verbose bool

	// Resolved before any subcommand runs.
	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "N×N×N cube simulator",
	Long: `cubesim - A turn simulator for cubes of any size.

Parse standard face-turn notation, animate turns frame by frame, print the
cube as an unfolded net, stream frames to a renderer over websocket, and
keep a journal of every committed turn.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: loadConfig reads rootCmd's flags.
	rootCmd.PersistentPreRunE = loadConfig

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ~/.cubesim/config.yaml)")
	flags.String("db", "", "Journal database path (default: ~/.cubesim/journal.db)")
	flags.Int("dim", 3, "Cube dimension")
	flags.Float64("speed", 0, "Turn speed in radians per second (default: pi)")
	flags.Int("fps", 60, "Frames per second")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig merges defaults, config file, CUBESIM_* environment and flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	keys := []string{
		config.KeyDB, config.KeyDim, config.KeySpeed,
		config.KeyFPS, config.KeyAddr, config.KeyLoop,
	}
	// Only flags the user set override file and environment. Root flags
	// win over a subcommand's local flag of the same name.
	for _, key := range keys {
		f := rootCmd.PersistentFlags().Lookup(key)
		if f == nil {
			f = cmd.Flags().Lookup(key)
		}
		if f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", key, err)
			}
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	l, err := newLogger(verbose)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("config loaded",
		zap.Int("dim", cfg.Dim),
		zap.Float64("speed", cfg.Speed),
		zap.Int("fps", cfg.FPS),
		zap.String("db", cfg.DB),
	)
	return nil
}
