package agent

import (
	"context"

	"santorini/experiments/metrics"
	"santorini/game"
)

type Agent interface {
	// FindMove returns a move for the active player of state and performance
	// metrics (if collected) from the search.
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error)
}
