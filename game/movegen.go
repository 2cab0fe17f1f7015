package game

// LegalDestinations returns the cells the worker on worker may step to:
// adjacent, unoccupied, not a dome, and at most one level higher.
func LegalDestinations(s State, worker Position) []Position {
	origin := s.Level(worker)
	var destinations []Position
	for _, p := range Adjacent(worker) {
		if s.IsOccupied(p) || s.IsDome(p) {
			continue
		}
		if s.Level(p) <= origin+1 {
			destinations = append(destinations, p)
		}
	}
	return destinations
}

// LegalBuilds returns the cells a worker standing on worker may build on:
// adjacent, unoccupied and not yet domed.
func LegalBuilds(s State, worker Position) []Position {
	var builds []Position
	for _, p := range Adjacent(worker) {
		if s.IsOccupied(p) || s.IsDome(p) {
			continue
		}
		builds = append(builds, p)
	}
	return builds
}

// LegalMoves enumerates every (worker, destination, build) triple for the
// active player. Builds are generated from the destination after the worker
// has left its origin, so the vacated cell is a legal build target. A won
// state has no legal moves; an undecided state with none means the active
// player has lost. A state with nobody to move has none either.
func LegalMoves(s State) []Move {
	if s.Won != NoPlayer || !s.Turn.Valid() {
		return nil
	}

	var moves []Move
	for _, worker := range s.WorkersOf(s.Turn) {
		for _, to := range LegalDestinations(s, worker) {
			moved := s
			moved.Workers[worker.Row][worker.Col] = NoPlayer
			moved.Workers[to.Row][to.Col] = s.Turn
			for _, build := range LegalBuilds(moved, to) {
				moves = append(moves, Move{Worker: worker, To: to, Build: build})
			}
		}
	}
	return moves
}

// IsLegal reports whether m is among LegalMoves(s).
func IsLegal(s State, m Move) bool {
	for _, legal := range LegalMoves(s) {
		if legal == m {
			return true
		}
	}
	return false
}
