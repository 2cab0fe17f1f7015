package experiments

import (
	"context"
	"fmt"
	"time"

	"santorini/agent"
	"santorini/engine"
	"santorini/experiments/metrics"
	"santorini/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Arena plays every matchup NumGames times. The agents swap seats on every
// other game so neither always moves first.
type Arena struct {
	NumGames    int // Per matchup
	Concurrency int // Games played at once
	MaxTurns    int
}

type Report struct {
	Matchups [][2]metrics.AgentConfig
	Games    []metrics.GameRecord
	Moves    []metrics.MoveRecord
	Results  []metrics.MatchupResult
	Start    time.Time
	End      time.Time
}

type job struct {
	matchup int
	game    int
	swapped bool // The matchup's second agent plays Player1
}

type outcome struct {
	job
	result engine.MatchResult
}

// Run plays all games and tallies them per matchup. It stops at the first
// failing game.
func (a Arena) Run(ctx context.Context, matchups [][2]metrics.AgentConfig) (Report, error) {
	report := Report{Matchups: matchups, Start: time.Now()}

	jobs := make([]job, 0, len(matchups)*a.NumGames)
	for mi := range matchups {
		for i := 0; i < a.NumGames; i++ {
			jobs = append(jobs, job{matchup: mi, game: i, swapped: i%2 == 1})
		}
	}
	log.Info().Msgf("starting arena with %d matchups and %d games", len(matchups), len(jobs))

	outcomes := make([]outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}
	for i, j := range jobs {
		g.Go(func() error {
			result, err := a.runGame(ctx, matchups[j.matchup], j)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", j.matchup+1, j.game+1, err)
			}
			outcomes[i] = outcome{job: j, result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report.Results = make([]metrics.MatchupResult, len(matchups))
	for mi, matchup := range matchups {
		report.Results[mi] = metrics.MatchupResult{Agent1: matchup[0].ID, Agent2: matchup[1].ID}
	}
	for i, o := range outcomes {
		id := i + 1
		seats := seatConfigs(matchups[o.matchup], o.swapped)
		report.Games = append(report.Games, metrics.GameRecord{
			ID:         id,
			Agent1:     seats[0].ID,
			Agent2:     seats[1].ID,
			GameMetric: o.result.GameMetric,
		})
		for _, mm := range o.result.MoveMetrics {
			report.Moves = append(report.Moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
		}
		tally(&report.Results[o.matchup], o)
	}

	report.End = time.Now()
	log.Info().Msgf("completed arena in %s", report.End.Sub(report.Start))
	return report, nil
}

func (a Arena) runGame(ctx context.Context, matchup [2]metrics.AgentConfig, j job) (engine.MatchResult, error) {
	seats := seatConfigs(matchup, j.swapped)
	agents := [2]agent.Agent{
		NewAgent(seats[0], uint64(j.game)),
		NewAgent(seats[1], uint64(j.game)),
	}

	options := []engine.MatchOption{}
	if a.MaxTurns > 0 {
		options = append(options, engine.WithMaxTurns(a.MaxTurns))
	}

	result, err := engine.NewMatch(agents, options...).Run(ctx)
	if err != nil {
		return engine.MatchResult{}, err
	}
	log.Debug().Msgf("game %d of agent %d vs agent %d won by %s", j.game+1, seats[0].ID, seats[1].ID, result.Winner)
	return result, nil
}

func seatConfigs(matchup [2]metrics.AgentConfig, swapped bool) [2]metrics.AgentConfig {
	if swapped {
		return [2]metrics.AgentConfig{matchup[1], matchup[0]}
	}
	return matchup
}

// tally credits the winner to the matchup agent, whichever seat it played.
func tally(r *metrics.MatchupResult, o outcome) {
	r.Games++
	winnerSeat := int(o.result.Winner) - 1
	switch {
	case winnerSeat < 0:
		r.Unfinished++
	case (winnerSeat == 0) != o.swapped:
		r.Wins1++
	default:
		r.Wins2++
	}
}

// NewAgent builds a fresh agent for one game. A zero config seed leaves the
// agent time-seeded; otherwise game is mixed in so games differ.
func NewAgent(config metrics.AgentConfig, game uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(searcher.NewRandom(samplerSeed(config, game)))
	}

	options := []searcher.Option{searcher.WithMetrics()}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed+game))
	}
	mcts := searcher.NewMCTS(options...)

	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, samplerSeed(config, game))
	}
	return agent.NewEvaluationAgent(mcts)
}

// samplerSeed seeds the move samplers that take a raw seed, falling back to
// the clock when the config leaves the seed at zero.
func samplerSeed(config metrics.AgentConfig, game uint64) uint64 {
	if config.Seed != 0 {
		return config.Seed + game
	}
	return uint64(time.Now().UnixNano())
}

// Write stores the report in a new experiment folder under root and returns
// the folder.
func (r Report) Write(root, name string, configs []metrics.AgentConfig) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	numGames := 0
	if len(r.Results) > 0 {
		numGames = r.Results[0].Games
	}
	if err := writer.WriteSetup(r.Start, r.End, r.Matchups, numGames); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(r.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(r.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteWinRateChart(r.Results); err != nil {
		return "", err
	}
	return writer.Dir(), nil
}
