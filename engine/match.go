package engine

import (
	"context"
	"fmt"
	"time"

	"santorini/agent"
	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/meta"

	"github.com/rs/zerolog/log"
)

type MatchOption func(m *Match)

// WithStartState replaces the reference starting position.
func WithStartState(state game.State) MatchOption {
	return func(m *Match) {
		m.start = state
	}
}

func WithMaxTurns(turns int) MatchOption {
	return func(m *Match) {
		if turns > 0 {
			m.maxTurns = turns
		}
	}
}

// Match plays two agents against each other. agents[0] plays Player1 and
// agents[1] plays Player2.
type Match struct {
	agents   [2]agent.Agent
	start    game.State
	maxTurns int
}

type MatchResult struct {
	Winner      game.Player // NoPlayer when the turn cap was hit
	Final       game.State
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}

func NewMatch(agents [2]agent.Agent, options ...MatchOption) *Match {
	m := &Match{
		agents:   agents,
		start:    game.NewState(),
		maxTurns: meta.MaxTurns,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Run executes the game loop until there is a winner or the turn cap is
// reached.
func (m *Match) Run(ctx context.Context) (MatchResult, error) {
	for i, a := range m.agents {
		if a == nil {
			return MatchResult{}, fmt.Errorf("%w for %s", ErrNoAgent, game.Player(i+1))
		}
	}
	if err := m.start.Validate(); err != nil {
		return MatchResult{}, fmt.Errorf("bad start state: %w", err)
	}

	g := NewGame(m.start)
	startTime := time.Now()
	startingPlayer := m.start.Turn
	log.Debug().Msgf("%s is starting", startingPlayer)

	var moveMetrics []metrics.MoveMetric
	for turn := 1; !g.Over() && turn <= m.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return MatchResult{}, err
		}

		state := g.State()
		player := state.Turn
		move, metric, err := m.agents[player-1].FindMove(ctx, state)
		if err != nil {
			return MatchResult{}, fmt.Errorf("%s failed to find a move on turn %d: %w", player, turn, err)
		}
		if err := g.Play(move); err != nil {
			return MatchResult{}, fmt.Errorf("%s played %s on turn %d: %w", player, move, turn, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         move,
			SearchMetric: metric,
		})
		log.Debug().Msgf("turn %d: %s played %s", turn, player, move)
	}

	winner := g.Winner()
	if winner != game.NoPlayer {
		log.Debug().Msgf("game ended with winner %s after %d moves", winner, len(moveMetrics))
	} else {
		log.Warn().Msgf("stopped after %d turns without a winner", m.maxTurns)
	}

	endTime := time.Now()
	return MatchResult{
		Winner: winner,
		Final:  g.State(),
		GameMetric: metrics.GameMetric{
			StartingPlayer: startingPlayer,
			Winner:         winner,
			StartTime:      startTime,
			EndTime:        endTime,
			Duration:       endTime.Sub(startTime),
			TotalMoves:     len(moveMetrics),
		},
		MoveMetrics: moveMetrics,
	}, nil
}
