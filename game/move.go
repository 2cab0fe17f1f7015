package game

import (
	"fmt"
	"strings"
)

// Move is one complete turn: relocate the worker on Worker to To, then build
// on Build.
type Move struct {
	Worker Position
	To     Position
	Build  Position
}

// String returns the move as "a1-b2-c3".
func (m Move) String() string {
	return m.Worker.String() + "-" + m.To.String() + "-" + m.Build.String()
}

// ParseMove parses "a1-b2-c3" notation. Spaces may be used instead of dashes.
func ParseMove(s string) (Move, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '-' || r == ' '
	})
	if len(fields) != 3 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	var positions [3]Position
	for i, field := range fields {
		p, err := ParsePosition(field)
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
		}
		positions[i] = p
	}
	return Move{Worker: positions[0], To: positions[1], Build: positions[2]}, nil
}

func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
