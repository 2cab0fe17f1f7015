package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition = errors.New("invalid board position")
	ErrInvalidMove     = errors.New("invalid move notation")
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidState    = errors.New("invalid game state")
)

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
