package cli

import (
	"fmt"
	"runtime"

	"santorini/experiments"
	"santorini/experiments/metrics"
	"santorini/meta"

	"github.com/spf13/cobra"
)

func newArenaCmd(cfg *Config) *cobra.Command {
	var (
		games         int
		concurrency   int
		outDir        string
		rivalBudget   int
		temperature   float64
		skipRandom    bool
		experimentTag string
	)

	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Play many engine games and record the results",
		Long: `Play the configured search agent against a random agent and against a
search agent with a different budget. Seats alternate every game. Results are
written as CSV files and an HTML win rate chart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			search := cfg.agentConfig(1)
			rival := cfg.agentConfig(2)
			rival.Iterations = rivalBudget
			rival.Temperature = temperature
			if rival.Seed != 0 {
				rival.Seed += 1000
			}
			random := metrics.AgentConfig{ID: 3, Random: true, Seed: cfg.Seed}

			configs := []metrics.AgentConfig{search, rival}
			matchups := [][2]metrics.AgentConfig{{search, rival}}
			if !skipRandom {
				configs = append(configs, random)
				matchups = append(matchups, [2]metrics.AgentConfig{search, random})
			}

			arena := experiments.Arena{NumGames: games, Concurrency: concurrency, MaxTurns: meta.MaxTurns}
			report, err := arena.Run(cmd.Context(), matchups)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range report.Results {
				fmt.Fprintf(out, "agent %d vs agent %d: %d-%d (%d unfinished) over %d games\n",
					r.Agent1, r.Agent2, r.Wins1, r.Wins2, r.Unfinished, r.Games)
			}

			dir, err := report.Write(outDir, experimentTag, configs)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "results written to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", meta.NumGames, "Games per matchup")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Games played at once")
	cmd.Flags().StringVar(&outDir, "out", "experiments", "Folder for experiment results")
	cmd.Flags().StringVar(&experimentTag, "name", "arena", "Experiment name")
	cmd.Flags().IntVar(&rivalBudget, "rival-iterations", meta.Iterations/5, "Iterations of the rival search agent")
	cmd.Flags().Float64Var(&temperature, "rival-temperature", 0, "Sample the rival's moves at this temperature, 0 plays the most visited move")
	cmd.Flags().BoolVar(&skipRandom, "skip-random", false, "Skip the matchup against the random agent")
	return cmd
}
