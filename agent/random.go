package agent

import (
	"context"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
)

type randomAgent struct {
	rng searcher.Random
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
func NewRandomAgent(rng searcher.Random) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(_ context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, ErrNoMove
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
