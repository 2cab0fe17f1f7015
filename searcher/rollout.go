package searcher

import (
	"santorini/game"

	"github.com/rs/zerolog/log"
)

// Rollout plays s to the end with uniformly random legal moves and returns the
// winner and the number of moves played. A player left without legal moves
// loses. If ceiling moves pass without a result the rollout is abandoned and
// NoPlayer is returned. Every turn adds a level and the board holds at most
// Rows*Cols*4, so real games never reach the ceiling.
func Rollout(s game.State, rng Random, ceiling int) (game.Player, int) {
	if s.Won != game.NoPlayer {
		return s.Won, 0
	}

	for depth := 0; depth < ceiling; depth++ {
		moves := game.LegalMoves(s)
		if len(moves) == 0 {
			return s.Turn.Opponent(), depth
		}

		move := moves[rng.Intn(len(moves))] // Random rollout policy
		var winner game.Player
		s, winner = s.Apply(move)
		if winner != game.NoPlayer {
			return winner, depth + 1
		}
	}

	log.Warn().Msgf("rollout abandoned after %d moves at state %x", ceiling, s.Hash())
	return game.NoPlayer, ceiling
}
