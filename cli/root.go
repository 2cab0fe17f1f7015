package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "santorini",
		Short: "Santorini with a Monte Carlo Tree Search opponent",
		Long: `santorini plays Santorini on a 5x5 board against a Monte Carlo Tree Search
engine, runs engine matches and arenas, and serves the engine over HTTP.

Moves are written worker-destination-build in a1 notation, e.g. a1-b2-c3.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().IntVarP(&cfg.Iterations, "iterations", "n", cfg.Iterations, "Search iterations per move (env: SANTORINI_ITERATIONS)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Duration, "duration", cfg.Duration, "Wall-clock cap per move, 0 for none")
	rootCmd.PersistentFlags().Float64Var(&cfg.Exploration, "exploration", cfg.Exploration, "UCT exploration constant")
	rootCmd.PersistentFlags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 for time-seeded (env: SANTORINI_SEED)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (env: SANTORINI_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable coloured output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd(cfg))
	rootCmd.AddCommand(newMatchCmd(cfg))
	rootCmd.AddCommand(newArenaCmd(cfg))
	rootCmd.AddCommand(newBestMoveCmd(cfg))
	rootCmd.AddCommand(newMovesCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))

	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
