package agent

import (
	"context"
	"math"
	"sort"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples root moves in proportion to
// visits^(1/temperature). A temperature near zero approaches the most visited
// move; larger values explore more.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	tree, metric := a.mcts.Search(ctx, state)
	if _, ok := tree.BestMove(); !ok {
		if err := ctx.Err(); err != nil {
			return game.Move{}, metric, err
		}
		return game.Move{}, metric, ErrNoMove
	}
	policy := adjustTemperature(tree.RootChildren(), a.temperature)
	return sample(policy, a.rng.Float64()), metric, nil
}

type weightedMove struct {
	move game.Move
	prob float64
}

func adjustTemperature(children []searcher.NodeStats, temperature float64) []weightedMove {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]weightedMove, 0, len(children))
	for _, child := range children {
		prob := math.Pow(float64(child.Visits), exponent)
		sum += prob
		policy = append(policy, weightedMove{move: child.Move, prob: prob})
	}
	// Normalize
	for i := range policy {
		policy[i].prob /= sum
	}
	sort.SliceStable(policy, func(i, j int) bool {
		return policy[i].move.String() < policy[j].move.String()
	})
	return policy
}

// sample picks the move whose cumulative probability first exceeds sampled.
func sample(policy []weightedMove, sampled float64) game.Move {
	cumulative := 0.0
	var lastMove game.Move
	for _, wm := range policy {
		lastMove = wm.move
		cumulative += wm.prob
		if sampled < cumulative {
			return wm.move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
