package agent

import "errors"

// ErrNoMove is returned when the active player has no legal move or the game
// is already decided.
var ErrNoMove = errors.New("no move available")
