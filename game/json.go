package game

import (
	"encoding/json"
	"fmt"
)

type workerJSON struct {
	Position string `json:"position"`
	Player   Player `json:"player"`
}

type stateJSON struct {
	Levels  [Rows][Cols]Level `json:"levels"`
	Workers []workerJSON      `json:"workers"`
	Turn    Player            `json:"turn"`
	Winner  Player            `json:"winner,omitempty"`
}

// MarshalJSON encodes the worker grid as a list of placed workers.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Levels: s.Levels,
		Turn:   s.Turn,
		Winner: s.Won,
	}
	for _, player := range []Player{Player1, Player2} {
		for _, p := range s.WorkersOf(player) {
			out.Workers = append(out.Workers, workerJSON{Position: p.String(), Player: player})
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes and validates a state.
func (s *State) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	decoded := State{
		Levels: in.Levels,
		Turn:   in.Turn,
		Won:    in.Winner,
	}
	for _, w := range in.Workers {
		p, err := ParsePosition(w.Position)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
		if decoded.IsOccupied(p) {
			return invalidState("two workers on %s", p)
		}
		if w.Player != Player1 && w.Player != Player2 {
			return invalidState("unknown player %d at %s", w.Player, p)
		}
		decoded.Workers[p.Row][p.Col] = w.Player
	}
	if err := decoded.Validate(); err != nil {
		return err
	}

	*s = decoded
	return nil
}
