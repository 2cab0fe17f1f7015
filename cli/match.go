package cli

import (
	"fmt"
	"time"

	"santorini/agent"
	"santorini/engine"
	"santorini/game"
	"santorini/meta"
	"santorini/searcher"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

func newMatchCmd(cfg *Config) *cobra.Command {
	var (
		opponent string
		turns    int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play one engine game and print the moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			second, err := newOpponent(cfg, opponent)
			if err != nil {
				return err
			}
			agents := [2]agent.Agent{agent.NewEvaluationAgent(cfg.newMCTS()), second}

			result, err := engine.NewMatch(agents, engine.WithMaxTurns(turns)).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, mm := range result.MoveMetrics {
				fmt.Fprintf(out, "%3d. %s %s\n", mm.Step, mm.Player, mm.Move)
			}
			fmt.Fprint(out, renderBoard(result.Final, aurora.NewAurora(!cfg.NoColor)))
			if result.Winner == game.NoPlayer {
				fmt.Fprintf(out, "no winner after %d turns\n", len(result.MoveMetrics))
			} else {
				fmt.Fprintf(out, "%s wins after %d turns in %s\n", result.Winner, len(result.MoveMetrics), result.GameMetric.Duration.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opponent, "opponent", "mcts", "Player 2: mcts or random")
	cmd.Flags().IntVar(&turns, "turns", meta.MaxTurns, "Turn cap")
	return cmd
}

func newOpponent(cfg *Config, kind string) (agent.Agent, error) {
	switch kind {
	case "mcts":
		// A different seed keeps seeded self-play from mirroring
		options := cfg.searchOptions()
		if cfg.Seed != 0 {
			options = append(options, searcher.WithSeed(cfg.Seed+1))
		}
		return agent.NewEvaluationAgent(searcher.NewMCTS(options...)), nil
	case "random":
		seed := cfg.Seed
		if seed == 0 {
			return agent.NewRandomAgent(searcher.NewRandom(uint64(time.Now().UnixNano()))), nil
		}
		return agent.NewRandomAgent(searcher.NewRandom(seed + 1)), nil
	default:
		return nil, fmt.Errorf("unknown opponent %q, want mcts or random", kind)
	}
}
