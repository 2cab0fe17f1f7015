package game

import (
	"hash/fnv"
	"strconv"
)

// Level is the building height of a cell.
type Level uint8

const (
	Ground Level = iota
	Level1
	Level2
	Level3
	Dome // Capped: cannot be entered or built on
)

// WinningLevel is the level a worker must step onto to win.
const WinningLevel = Level3

// Player identifies a side. NoPlayer marks an empty cell or an undecided game.
type Player uint8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Valid reports whether p is one of the two sides.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

func (p Player) String() string {
	if p == NoPlayer {
		return "none"
	}
	return "player" + strconv.Itoa(int(p))
}

type StateHash uint64

// State is a complete game snapshot. It is a plain value: assigning it copies
// the board and worker placement, so states handed to the search never alias
// the live game or each other.
type State struct {
	Levels  [Rows][Cols]Level
	Workers [Rows][Cols]Player // NoPlayer for unoccupied cells
	Turn    Player             // Player to move
	Won     Player             // Set by a winning move, NoPlayer otherwise
}

// NewState returns the standard opening: player 1 on a1 and e1, player 2 on a5
// and e5, flat board, player 1 to move.
func NewState() State {
	var s State
	s.Workers[0][0] = Player1
	s.Workers[0][4] = Player1
	s.Workers[4][0] = Player2
	s.Workers[4][4] = Player2
	s.Turn = Player1
	return s
}

func (s State) Player() Player {
	return s.Turn
}

// Winner returns the player who won by climbing, or NoPlayer. A player left
// without legal moves loses, but that is a property of LegalMoves, not of the
// stored winner; see Outcome.
func (s State) Winner() Player {
	return s.Won
}

// Outcome returns the decided winner of the state, if any: the climber, or the
// opponent of an active player with no legal moves.
func (s State) Outcome() (Player, bool) {
	if s.Won != NoPlayer {
		return s.Won, true
	}
	if !s.Turn.Valid() {
		return NoPlayer, false
	}
	if len(LegalMoves(s)) == 0 {
		return s.Turn.Opponent(), true
	}
	return NoPlayer, false
}

func (s State) Level(p Position) Level {
	return s.Levels[p.Row][p.Col]
}

func (s State) Occupant(p Position) Player {
	return s.Workers[p.Row][p.Col]
}

func (s State) IsOccupied(p Position) bool {
	return s.Workers[p.Row][p.Col] != NoPlayer
}

func (s State) IsDome(p Position) bool {
	return s.Levels[p.Row][p.Col] >= Dome
}

// WorkersOf returns the positions of player's workers in row-major order.
func (s State) WorkersOf(player Player) []Position {
	positions := make([]Position, 0, 2)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if s.Workers[r][c] == player {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return positions
}

// Hash fingerprints the state for logging and duplicate detection.
func (s State) Hash() StateHash {
	hasher := fnv.New64a()

	var buf [2*Rows*Cols + 2]byte
	i := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			buf[i] = byte(s.Levels[r][c])
			buf[i+1] = byte(s.Workers[r][c])
			i += 2
		}
	}
	buf[i] = byte(s.Turn)
	buf[i+1] = byte(s.Won)
	hasher.Write(buf[:])

	return StateHash(hasher.Sum64())
}

// Validate checks the structural invariants of a state built from outside
// input.
func (s State) Validate() error {
	if !s.Turn.Valid() {
		return invalidState("turn must be player 1 or 2, got %d", s.Turn)
	}
	if s.Won > Player2 {
		return invalidState("unknown winner %d", s.Won)
	}
	counts := map[Player]int{}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if s.Levels[r][c] > Dome {
				return invalidState("level %d at %s exceeds dome", s.Levels[r][c], Position{Row: r, Col: c})
			}
			owner := s.Workers[r][c]
			if owner == NoPlayer {
				continue
			}
			if owner > Player2 {
				return invalidState("unknown player %d at %s", owner, Position{Row: r, Col: c})
			}
			if s.Levels[r][c] == Dome {
				return invalidState("worker on dome at %s", Position{Row: r, Col: c})
			}
			counts[owner]++
		}
	}
	for _, player := range []Player{Player1, Player2} {
		if counts[player] > 2 {
			return invalidState("%s has %d workers", player, counts[player])
		}
	}
	return nil
}
