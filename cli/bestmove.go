package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"santorini/game"

	"github.com/spf13/cobra"
)

type bestMoveOutput struct {
	Move     game.Move `json:"move"`
	Episodes int       `json:"episodes"`
	TreeSize int       `json:"treeSize"`
	Visits   int       `json:"visits"`
	Wins     int       `json:"wins"`
}

func newBestMoveCmd(cfg *Config) *cobra.Command {
	var (
		statePath string
		asJSON    bool
		top       int
	)

	cmd := &cobra.Command{
		Use:   "bestmove",
		Short: "Search a JSON state and print the best move",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readState(statePath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tree, metric := cfg.newMCTS().Search(cmd.Context(), state)
			move, ok := tree.BestMove()
			if !ok {
				winner, _ := state.Outcome()
				return fmt.Errorf("no move for %s: %s wins", state.Turn, winner)
			}

			children := tree.RootChildren()
			sort.SliceStable(children, func(i, j int) bool {
				return children[i].Visits > children[j].Visits
			})

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(bestMoveOutput{
					Move:     move,
					Episodes: metric.Episodes,
					TreeSize: metric.TreeSize,
					Visits:   children[0].Visits,
					Wins:     children[0].Wins,
				})
			}

			fmt.Fprintf(out, "bestmove %s\n", move)
			for i, child := range children {
				if i == top {
					break
				}
				fmt.Fprintf(out, "  %s visits=%d wins=%d\n", child.Move, child.Visits, child.Wins)
			}
			fmt.Fprintf(out, "%d iterations, %d nodes, %s\n", metric.Episodes, metric.TreeSize, metric.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "-", "JSON state file, - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().IntVar(&top, "top", 5, "Root moves to list")
	return cmd
}

func newMovesCmd(cfg *Config) *cobra.Command {
	var statePath string

	cmd := &cobra.Command{
		Use:   "moves",
		Short: "List the legal moves of a JSON state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readState(statePath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if winner, over := state.Outcome(); over {
				fmt.Fprintf(out, "%s wins\n", winner)
				return nil
			}
			printMoves(out, game.LegalMoves(state))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "-", "JSON state file, - for stdin")
	return cmd
}
