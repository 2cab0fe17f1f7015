package engine

import (
	"fmt"
	"sync"

	"santorini/game"
)

type Update struct {
	Move  game.Move
	State game.State
}

// Game is the authoritative copy of a live game. Every move is validated
// against the legal moves before the state changes. Game is safe for
// concurrent use.
type Game struct {
	mu      sync.RWMutex
	state   game.State
	winner  game.Player
	history []Update
}

// NewGame starts a live game from state. A state whose active player is
// already stuck is over from the start.
func NewGame(state game.State) *Game {
	g := &Game{state: state}
	g.winner, _ = state.Outcome()
	return g
}

// State returns a snapshot of the current state.
func (g *Game) State() game.State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Game) LegalMoves() []game.Move {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.winner != game.NoPlayer {
		return nil
	}
	return game.LegalMoves(g.state)
}

// Play validates move and applies it. The live state is untouched when an
// error is returned.
func (g *Game) Play(move game.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.winner != game.NoPlayer {
		return fmt.Errorf("%w: %s won", game.ErrGameOver, g.winner)
	}

	next, _, err := game.Play(g.state, move)
	if err != nil {
		return err
	}

	g.state = next
	g.history = append(g.history, Update{Move: move, State: next})
	// A player left without moves loses
	g.winner, _ = next.Outcome()
	return nil
}

func (g *Game) Over() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winner != game.NoPlayer
}

// Winner returns the winner, or NoPlayer while the game is running.
func (g *Game) Winner() game.Player {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winner
}

// History returns the moves played so far with the state after each.
func (g *Game) History() []Update {
	g.mu.RLock()
	defer g.mu.RUnlock()
	history := make([]Update, len(g.history))
	copy(history, g.history)
	return history
}
