// meta/meta.go
package meta

// Iterations is the default MCTS search budget per move.
const Iterations = 500

// RolloutCeiling bounds the length of a random playout. A game on a 5x5 board
// can last at most 100 turns.
const RolloutCeiling = 256

// MaxTurns bounds a match between two agents.
const MaxTurns = 200

// NumGames is the default number of games per arena matchup.
const NumGames = 20
