package searcher

import (
	"testing"

	"santorini/game"

	"github.com/stretchr/testify/require"
)

// scriptedRandom returns queued values, then 0 once the queue is empty.
type scriptedRandom struct {
	values []int
	next   int
	calls  int
}

func (r *scriptedRandom) Intn(n int) int {
	r.calls++
	if r.next >= len(r.values) {
		return 0
	}
	v := r.values[r.next]
	r.next++
	return v % n
}

func trappedState() game.State {
	s := game.State{Turn: game.Player1}
	s.Workers[0][0] = game.Player1
	s.Levels[0][1] = game.Dome
	s.Levels[1][0] = game.Dome
	s.Levels[1][1] = game.Dome
	s.Workers[4][4] = game.Player2
	return s
}

func TestRollout(t *testing.T) {
	t.Run("returning the winner of a decided state", func(t *testing.T) {
		s := game.NewState()
		s.Won = game.Player2
		rng := &scriptedRandom{}

		winner, moves := Rollout(s, rng, 10)

		require.Equal(t, game.Player2, winner)
		require.Zero(t, moves)
		require.Zero(t, rng.calls, "Should not draw random numbers")
	})

	t.Run("player without moves loses", func(t *testing.T) {
		winner, moves := Rollout(trappedState(), &scriptedRandom{}, 10)

		require.Equal(t, game.Player2, winner)
		require.Zero(t, moves)
	})

	t.Run("stopping at the ceiling", func(t *testing.T) {
		winner, moves := Rollout(game.NewState(), &scriptedRandom{}, 1)

		require.Equal(t, game.NoPlayer, winner)
		require.Equal(t, 1, moves)
	})

	t.Run("playing random games to a result", func(t *testing.T) {
		rng := NewRandom(42)
		for i := 0; i < 100; i++ {
			winner, moves := Rollout(game.NewState(), rng, 256)

			require.Contains(t, []game.Player{game.Player1, game.Player2}, winner)
			require.LessOrEqual(t, moves, game.Rows*game.Cols*int(game.Dome))
		}
	})

	t.Run("does not modify the caller's state", func(t *testing.T) {
		s := game.NewState()
		Rollout(s, NewRandom(1), 256)
		require.Equal(t, game.NewState(), s)
	})
}
