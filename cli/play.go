package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"santorini/agent"
	"santorini/engine"
	"santorini/game"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

func newPlayCmd(cfg *Config) *cobra.Command {
	var human int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the search engine in the terminal",
		Long: `Play a game from the reference start against the search engine.

Enter moves as worker-destination-build, e.g. a1-b2-c3. Type ? to list the
legal moves and quit to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if human != 1 && human != 2 {
				return fmt.Errorf("--human must be 1 or 2, got %d", human)
			}
			humanPlayer := game.Player(human)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())
			au := aurora.NewAurora(!cfg.NoColor)
			bot := agent.NewEvaluationAgent(cfg.newMCTS())
			g := engine.NewGame(game.NewState())

			for !g.Over() {
				state := g.State()
				fmt.Fprint(out, renderBoard(state, au))

				if state.Turn == humanPlayer {
					quit, err := readHumanMove(in, out, g)
					if err != nil {
						return err
					}
					if quit {
						fmt.Fprintln(out, "bye")
						return nil
					}
					continue
				}

				move, metric, err := bot.FindMove(ctx, state)
				if err != nil {
					return err
				}
				if err := g.Play(move); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s plays %s (%d iterations, %s)\n", state.Turn, move, metric.Episodes, metric.Duration.Round(time.Millisecond))
			}

			fmt.Fprint(out, renderBoard(g.State(), au))
			if g.Winner() == humanPlayer {
				fmt.Fprintln(out, au.Green("you win"))
			} else {
				fmt.Fprintln(out, au.Red(fmt.Sprintf("%s wins", g.Winner())))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&human, "human", 1, "Player controlled from the terminal (1 moves first)")
	return cmd
}

// readHumanMove prompts until a legal move is played. It reports quit on
// "quit" or end of input.
func readHumanMove(in *bufio.Scanner, out io.Writer, g *engine.Game) (bool, error) {
	for {
		fmt.Fprintf(out, "%s> ", g.State().Turn)
		if !in.Scan() {
			return true, in.Err()
		}

		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "quit", "q":
			return true, nil
		case "?", "moves":
			printMoves(out, g.LegalMoves())
			continue
		}

		move, err := game.ParseMove(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := g.Play(move); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		return false, nil
	}
}
