package searcher

import (
	"context"
	"math"
	"time"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/meta"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

// MCTS chooses moves by Monte Carlo Tree Search with UCT selection and uniform
// random rollouts. Each search is single-threaded and owns its tree; an MCTS
// value must not be used by two goroutines at once because it owns its random
// source.
type MCTS struct {
	iterations int
	duration   time.Duration
	cSquared   float64
	ceiling    int
	rng        Random
	metrics    metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration caps the wall-clock time of a search. The iteration budget
// still applies.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithExploration sets the UCT exploration constant C.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.cSquared = c * c
		}
	}
}

func WithRolloutCeiling(ceiling int) Option {
	return func(m *MCTS) {
		if ceiling > 0 {
			m.ceiling = ceiling
		}
	}
}

func WithRandom(rng Random) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = NewRandom(seed)
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations: meta.Iterations,
		cSquared:   CSquared,
		ceiling:    meta.RolloutCeiling,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = newTimeSeededRandom()
	}
	return m
}

// Iterations returns the search budget per move.
func (m *MCTS) Iterations() int {
	return m.iterations
}

// SelectMove searches from state and returns the most visited root move. It
// returns false when state is already decided or its active player has no
// legal move. The search stops early when ctx is done or the configured
// duration elapses.
func (m *MCTS) SelectMove(ctx context.Context, state game.State) (game.Move, bool, metrics.SearchMetric) {
	tree, metric := m.Search(ctx, state)
	move, ok := tree.BestMove()
	if ok {
		log.Debug().Msgf("%s selected %s after %d episodes (tree size %d)", state.Turn, move, metric.Episodes, metric.TreeSize)
	}
	return move, ok, metric
}

// Search builds the tree for state and returns it with the search metrics.
func (m *MCTS) Search(ctx context.Context, state game.State) (*Tree, metrics.SearchMetric) {
	tree := newTree(state, m.cSquared)

	m.metrics.Start(m.iterations)
	if len(game.LegalMoves(state)) == 0 {
		log.Debug().Msgf("search called on a terminal state for %s", state.Turn)
		return tree, m.metrics.Complete()
	}

	deadline := time.Time{}
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	for i := 0; i < m.iterations; i++ {
		if ctx.Err() != nil {
			log.Debug().Msgf("search cancelled after %d of %d episodes", i, m.iterations)
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		m.simulate(tree)
	}

	m.metrics.SetTreeSize(tree.Size())
	return tree, m.metrics.Complete()
}

func (m *MCTS) simulate(tree *Tree) {
	leaf := tree.selectThenExpand(m.rng)
	winner, _ := Rollout(tree.nodes[leaf].state, m.rng, m.ceiling)
	if winner != game.NoPlayer {
		m.metrics.AddFullPlayout()
	}
	tree.backup(leaf, winner)
	m.metrics.AddEpisode()
}

// Exploration returns the UCT exploration constant C.
func (m *MCTS) Exploration() float64 {
	return math.Sqrt(m.cSquared)
}
