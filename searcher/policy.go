package searcher

import "math"

// CSquared is the square of the UCT exploration constant, C = sqrt(2).
const CSquared = 2.0

// uct scores the children of one fully expanded node. Child wins are counted
// for the player who moved into the child, which is the player choosing among
// them, so a higher score is always better for the chooser.
type uct struct {
	numerator float64 // c^2 * ln(parent visits)
}

func newUCT(cSquared float64, parentVisits float64) *uct {
	if parentVisits == 0 {
		panic("cannot score children of an unvisited node")
	}
	return &uct{numerator: cSquared * math.Log(parentVisits)}
}

// evaluate returns wins/visits + sqrt(c^2*ln(N)/visits). Every child of a
// fully expanded node has been visited at least once.
func (u uct) evaluate(wins float64, visits float64) float64 {
	if visits == 0 {
		panic("cannot score an unvisited child")
	}
	return wins/visits + math.Sqrt(u.numerator/visits)
}
