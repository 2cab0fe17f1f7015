package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"santorini/game"

	"github.com/logrusorgru/aurora"
)

// renderBoard draws the board like game.State.String, with workers and domes
// coloured.
func renderBoard(s game.State, au aurora.Aurora) string {
	var b strings.Builder
	for r := game.Rows - 1; r >= 0; r-- {
		fmt.Fprintf(&b, "%d ", r+1)
		for c := 0; c < game.Cols; c++ {
			b.WriteByte(' ')
			b.WriteString(renderCell(s, game.Position{Row: r, Col: c}, au))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  ")
	for c := 0; c < game.Cols; c++ {
		fmt.Fprintf(&b, " %c  ", 'a'+c)
	}
	b.WriteByte('\n')
	return b.String()
}

func renderCell(s game.State, p game.Position, au aurora.Aurora) string {
	level := "D"
	if !s.IsDome(p) {
		level = strconv.Itoa(int(s.Level(p)))
	}
	switch s.Occupant(p) {
	case game.Player1:
		return au.Bold(au.Blue(level + "1")).String()
	case game.Player2:
		return au.Bold(au.Red(level + "2")).String()
	}
	if s.IsDome(p) {
		return au.Magenta(level + ".").String()
	}
	return level + "."
}

func printMoves(out io.Writer, moves []game.Move) {
	for _, m := range moves {
		fmt.Fprintln(out, m)
	}
}
