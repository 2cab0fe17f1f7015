package engine

import (
	"context"
	"testing"

	"santorini/agent"
	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"

	"github.com/stretchr/testify/require"
)

// fixedAgent always plays the same move.
type fixedAgent struct {
	move game.Move
}

func (a fixedAgent) FindMove(context.Context, game.State) (game.Move, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, nil
}

func randomAgents(seed uint64) [2]agent.Agent {
	return [2]agent.Agent{
		agent.NewRandomAgent(searcher.NewRandom(seed)),
		agent.NewRandomAgent(searcher.NewRandom(seed + 1)),
	}
}

func TestMatchRun(t *testing.T) {
	t.Run("missing agent", func(t *testing.T) {
		_, err := NewMatch([2]agent.Agent{agent.NewRandomAgent(searcher.NewRandom(1)), nil}).Run(context.Background())
		require.ErrorIs(t, err, ErrNoAgent)
	})

	t.Run("start state with nobody to move", func(t *testing.T) {
		start := game.NewState()
		start.Turn = game.NoPlayer

		_, err := NewMatch(randomAgents(1), WithStartState(start)).Run(context.Background())

		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("playing random agents to a winner", func(t *testing.T) {
		result, err := NewMatch(randomAgents(3)).Run(context.Background())
		require.NoError(t, err)

		require.Contains(t, []game.Player{game.Player1, game.Player2}, result.Winner)
		outcome, over := result.Final.Outcome()
		require.True(t, over)
		require.Equal(t, result.Winner, outcome)

		require.Equal(t, game.Player1, result.GameMetric.StartingPlayer)
		require.Equal(t, result.Winner, result.GameMetric.Winner)
		require.Equal(t, len(result.MoveMetrics), result.GameMetric.TotalMoves)
		for i, mm := range result.MoveMetrics {
			require.Equal(t, i+1, mm.Step)
			expected := game.Player1
			if i%2 == 1 {
				expected = game.Player2
			}
			require.Equal(t, expected, mm.Player, "Players should alternate")
		}
	})

	t.Run("stopping at the turn cap", func(t *testing.T) {
		result, err := NewMatch(randomAgents(5), WithMaxTurns(2)).Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, game.NoPlayer, result.Winner)
		require.Len(t, result.MoveMetrics, 2)
		require.Equal(t, game.Player1, result.Final.Turn)
	})

	t.Run("rejecting an illegal move from an agent", func(t *testing.T) {
		cheat := fixedAgent{move: game.Move{Worker: game.Position{Row: 0, Col: 0}, To: game.Position{Row: 2, Col: 2}}}
		_, err := NewMatch([2]agent.Agent{cheat, cheat}).Run(context.Background())
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("starting from a decided state", func(t *testing.T) {
		s := game.State{Turn: game.Player1}
		s.Workers[0][0] = game.Player1
		s.Levels[0][1] = game.Dome
		s.Levels[1][0] = game.Dome
		s.Levels[1][1] = game.Dome
		s.Workers[4][4] = game.Player2

		result, err := NewMatch(randomAgents(1), WithStartState(s)).Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, game.Player2, result.Winner)
		require.Empty(t, result.MoveMetrics)
	})

	t.Run("search agent takes a forced win", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithIterations(1000), searcher.WithSeed(1), searcher.WithMetrics())
		agents := [2]agent.Agent{agent.NewEvaluationAgent(mcts), agent.NewRandomAgent(searcher.NewRandom(1))}

		result, err := NewMatch(agents, WithStartState(forcedWinState())).Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, game.Player1, result.Winner)
		require.Len(t, result.MoveMetrics, 1)
		require.Equal(t, 1000, result.MoveMetrics[0].Episodes)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewMatch(randomAgents(1)).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
