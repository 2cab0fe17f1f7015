package game

import "strings"

// String draws the board as text, top row last so that row 1 sits at the
// bottom. Cells show the level, and the owner of a worker standing there.
func (s State) String() string {
	var b strings.Builder
	for r := Rows - 1; r >= 0; r-- {
		b.WriteByte(byte('1' + r))
		b.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			b.WriteByte(' ')
			b.WriteString(cellText(s.Levels[r][c], s.Workers[r][c]))
		}
		b.WriteByte('\n')
	}
	b.WriteString("  ")
	for c := 0; c < Cols; c++ {
		b.WriteByte(' ')
		b.WriteByte(byte('a' + c))
		b.WriteString("  ")
	}
	b.WriteByte('\n')
	return b.String()
}

// cellText renders one cell: "D" for a dome, the level digit, followed by the
// worker's player number or '.' when empty.
func cellText(level Level, worker Player) string {
	var cell [3]byte
	if level >= Dome {
		cell[0] = 'D'
	} else {
		cell[0] = byte('0' + level)
	}
	switch worker {
	case Player1:
		cell[1] = '1'
	case Player2:
		cell[1] = '2'
	default:
		cell[1] = '.'
	}
	cell[2] = ' '
	return string(cell[:])
}
