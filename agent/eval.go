package agent

import (
	"context"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the most visited root move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	move, ok, metric := a.mcts.SelectMove(ctx, state)
	if !ok {
		if err := ctx.Err(); err != nil {
			return game.Move{}, metric, err
		}
		return game.Move{}, metric, ErrNoMove
	}
	return move, metric, nil
}
