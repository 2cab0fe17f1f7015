package game

import (
	"fmt"
	"strconv"
)

// Board dimensions
const (
	Rows = 5
	Cols = 5
)

// Position is a (row, column) cell on the board, 0-indexed.
type Position struct {
	Row int
	Col int
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// String returns the position in "a1" notation: column letter, then row number.
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return string(rune('a'+p.Col)) + strconv.Itoa(p.Row+1)
}

// ParsePosition parses "a1" notation.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	col := int(s[0] - 'a')
	if s[0] >= 'A' && s[0] <= 'Z' {
		col = int(s[0] - 'A')
	}
	row := int(s[1] - '1')
	p := Position{Row: row, Col: col}
	if !p.Valid() {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

// adjacency holds the clipped 8-neighbourhood of every cell, row-major.
var adjacency [Rows][Cols][]Position

func init() {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			var neighbors []Position
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					n := Position{Row: r + dr, Col: c + dc}
					if n.Valid() {
						neighbors = append(neighbors, n)
					}
				}
			}
			adjacency[r][c] = neighbors
		}
	}
}

// Adjacent returns the up to 8 neighbours of p within the board. The returned
// slice is shared and must not be modified.
func Adjacent(p Position) []Position {
	if !p.Valid() {
		return nil
	}
	return adjacency[p.Row][p.Col]
}

// IsAdjacent reports whether a and b are distinct neighbouring cells.
func IsAdjacent(a, b Position) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if a == b || !a.Valid() || !b.Valid() {
		return false
	}
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}
