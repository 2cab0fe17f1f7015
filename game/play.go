package game

import "fmt"

// Apply performs m without checking legality and returns the resulting state
// and the winner of the move (NoPlayer if the game continues). The receiver is
// a copy, so the caller's state is never modified.
//
// The win check reads the destination level as it was when the worker arrived;
// the build cannot change it because the destination is occupied.
func (s State) Apply(m Move) (State, Player) {
	player := s.Workers[m.Worker.Row][m.Worker.Col]
	s.Workers[m.Worker.Row][m.Worker.Col] = NoPlayer
	s.Workers[m.To.Row][m.To.Col] = player

	arrived := s.Levels[m.To.Row][m.To.Col]

	if s.Levels[m.Build.Row][m.Build.Col] < Dome {
		s.Levels[m.Build.Row][m.Build.Col]++
	}

	if arrived == WinningLevel {
		s.Won = player
		return s, player
	}

	s.Turn = s.Turn.Opponent()
	return s, NoPlayer
}

// Play validates s and m against the legal moves of s and applies it.
func Play(s State, m Move) (State, Player, error) {
	if err := s.Validate(); err != nil {
		return s, NoPlayer, err
	}
	if s.Won != NoPlayer {
		return s, NoPlayer, fmt.Errorf("%w: %s already won", ErrGameOver, s.Won)
	}
	if !IsLegal(s, m) {
		return s, NoPlayer, fmt.Errorf("%w: %s for %s", ErrIllegalMove, m, s.Turn)
	}
	next, winner := s.Apply(m)
	return next, winner, nil
}
