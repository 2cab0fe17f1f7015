package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Run("relocating, building and passing the turn", func(t *testing.T) {
		s := NewState()
		m := Move{Worker: Position{0, 0}, To: Position{1, 1}, Build: Position{2, 2}}

		next, winner := s.Apply(m)

		require.Equal(t, NoPlayer, winner)
		require.Equal(t, NoPlayer, next.Occupant(Position{0, 0}))
		require.Equal(t, Player1, next.Occupant(Position{1, 1}))
		require.Equal(t, Level1, next.Level(Position{2, 2}))
		require.Equal(t, Player2, next.Turn)
		require.Equal(t, NewState(), s, "Apply should not modify its receiver")
	})

	t.Run("building is capped at dome", func(t *testing.T) {
		s := NewState()
		s.Levels[2][2] = Dome
		next, _ := s.Apply(Move{Worker: Position{0, 0}, To: Position{1, 1}, Build: Position{2, 2}})
		require.Equal(t, Dome, next.Level(Position{2, 2}))
	})

	t.Run("stepping onto level 3 wins without passing the turn", func(t *testing.T) {
		s := State{Turn: Player1}
		s.Workers[0][0] = Player1
		s.Workers[4][4] = Player2
		s.Levels[0][0] = Level2
		s.Levels[0][1] = Level3

		m := Move{Worker: pos("a1"), To: pos("b1"), Build: pos("a1")}
		require.True(t, IsLegal(s, m), "2 -> 3 is a legal climb")

		next, winner := s.Apply(m)

		require.Equal(t, Player1, winner)
		require.Equal(t, Player1, next.Winner())
		require.Equal(t, Player1, next.Turn, "turn does not rotate after a win")
		require.Equal(t, Level3, next.Level(pos("a1")), "build still happens")
		require.Empty(t, LegalMoves(next))
	})

	t.Run("climbing from level 0 to level 3 is illegal", func(t *testing.T) {
		s := State{Turn: Player1}
		s.Workers[0][0] = Player1
		s.Workers[4][4] = Player2
		s.Levels[0][1] = Level3

		for _, m := range LegalMoves(s) {
			require.NotEqual(t, pos("b1"), m.To)
		}
	})

	t.Run("levels below 3 never win", func(t *testing.T) {
		for _, level := range []Level{Ground, Level1, Level2} {
			s := State{Turn: Player1}
			s.Workers[0][0] = Player1
			s.Workers[4][4] = Player2
			s.Levels[0][0] = Level2
			s.Levels[0][1] = level

			_, winner := s.Apply(Move{Worker: pos("a1"), To: pos("b1"), Build: pos("c1")})
			require.Equal(t, NoPlayer, winner, "moving onto level %d", level)
		}
	})

	t.Run("building level 3 under a neighbour does not win", func(t *testing.T) {
		s := State{Turn: Player1}
		s.Workers[0][0] = Player1
		s.Workers[4][4] = Player2
		s.Levels[0][2] = Level2

		next, winner := s.Apply(Move{Worker: pos("a1"), To: pos("b1"), Build: pos("c1")})
		require.Equal(t, NoPlayer, winner)
		require.Equal(t, Level3, next.Level(pos("c1")))
	})

	t.Run("is deterministic", func(t *testing.T) {
		s := NewState()
		m := LegalMoves(s)[7]
		a, wa := s.Apply(m)
		b, wb := s.Apply(m)
		require.Equal(t, a, b)
		require.Equal(t, wa, wb)
	})
}

func TestPlay(t *testing.T) {
	t.Run("rejecting an illegal move", func(t *testing.T) {
		s := NewState()
		m := Move{Worker: pos("a1"), To: pos("c3"), Build: pos("c4")}

		got, winner, err := Play(s, m)

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, s, got)
		require.Equal(t, NoPlayer, winner)
	})

	t.Run("rejecting the opponent's worker", func(t *testing.T) {
		_, _, err := Play(NewState(), Move{Worker: pos("a5"), To: pos("a4"), Build: pos("a3")})
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("rejecting moves after the game is won", func(t *testing.T) {
		s := NewState()
		s.Won = Player1
		_, _, err := Play(s, LegalMoves(NewState())[0])
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("rejecting a state with nobody to move", func(t *testing.T) {
		var s State
		m := Move{Worker: pos("a1"), To: pos("a2"), Build: pos("a3")}

		require.Empty(t, LegalMoves(s))
		winner, decided := s.Outcome()
		require.False(t, decided)
		require.Equal(t, NoPlayer, winner)

		got, _, err := Play(s, m)
		require.ErrorIs(t, err, ErrInvalidState)
		require.Equal(t, s, got)

		s = NewState()
		s.Turn = NoPlayer
		require.Empty(t, LegalMoves(s))
		_, _, err = Play(s, LegalMoves(NewState())[0])
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("rejecting a structurally broken state", func(t *testing.T) {
		s := NewState()
		s.Workers[2][2] = Player1

		_, _, err := Play(s, LegalMoves(NewState())[0])

		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("accepting a generated move", func(t *testing.T) {
		s := NewState()
		m := Move{Worker: pos("a1"), To: pos("b2"), Build: pos("c3")}
		next, winner, err := Play(s, m)
		require.NoError(t, err)
		require.Equal(t, NoPlayer, winner)
		require.Equal(t, Player2, next.Turn)
	})
}

// Random playouts check the rule invariants on every generated move.
func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 50; game++ {
		s := NewState()
		for turn := 0; turn < 200; turn++ {
			moves := LegalMoves(s)
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]

			require.Equal(t, s.Turn, s.Occupant(m.Worker))
			require.False(t, s.IsOccupied(m.To), "destination must be free")
			require.LessOrEqual(t, s.Level(m.To), s.Level(m.Worker)+1, "climb at most one level")
			require.True(t, IsAdjacent(m.Worker, m.To))
			require.True(t, IsAdjacent(m.To, m.Build))

			next, winner, err := Play(s, m)
			require.NoError(t, err)

			for r := 0; r < Rows; r++ {
				for c := 0; c < Cols; c++ {
					require.GreaterOrEqual(t, next.Levels[r][c], s.Levels[r][c], "levels never decrease")
					require.LessOrEqual(t, next.Levels[r][c], Dome)
				}
			}
			require.Len(t, next.WorkersOf(Player1), 2)
			require.Len(t, next.WorkersOf(Player2), 2)
			require.Equal(t, winner != NoPlayer, s.Level(m.To) == Level3)

			s = next
			if winner != NoPlayer {
				break
			}
		}
	}
}
