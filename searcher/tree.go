package searcher

import (
	"santorini/game"
)

const noParent = -1

// node is one search tree vertex. Nodes live in Tree.nodes and refer to each
// other by index.
type node struct {
	parent   int
	move     game.Move // Move from the parent, zero for the root
	state    game.State
	mover    game.Player // Player who chose move; wins are counted for them
	untried  []game.Move // Legal moves without a child yet, nil until expanded
	expanded bool
	children []int
	visits   int
	wins     int
}

// NodeStats is a read-only view of a node for callers outside the search.
type NodeStats struct {
	Move   game.Move
	Mover  game.Player
	Visits int
	Wins   int
}

// Tree is the search tree of a single move decision. It is discarded once the
// move is chosen.
type Tree struct {
	nodes    []node
	cSquared float64
}

func newTree(state game.State, cSquared float64) *Tree {
	root := node{
		parent: noParent,
		state:  state,
		mover:  state.Turn.Opponent(),
	}
	return &Tree{nodes: []node{root}, cSquared: cSquared}
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size() int {
	return len(t.nodes)
}

func (t *Tree) stats(i int) NodeStats {
	n := &t.nodes[i]
	return NodeStats{Move: n.move, Mover: n.mover, Visits: n.visits, Wins: n.wins}
}

// Root returns the statistics of the root node.
func (t *Tree) Root() NodeStats {
	return t.stats(0)
}

// RootChildren returns the statistics of the root's children in expansion
// order.
func (t *Tree) RootChildren() []NodeStats {
	children := make([]NodeStats, 0, len(t.nodes[0].children))
	for _, c := range t.nodes[0].children {
		children = append(children, t.stats(c))
	}
	return children
}

// BestMove returns the move of the most visited root child. Ties go to the
// child expanded first.
func (t *Tree) BestMove() (game.Move, bool) {
	root := &t.nodes[0]
	if len(root.children) == 0 {
		return game.Move{}, false
	}

	best := root.children[0]
	for _, c := range root.children[1:] {
		if t.nodes[c].visits > t.nodes[best].visits {
			best = c
		}
	}
	return t.nodes[best].move, true
}

// Policy returns each explored root move's share of the root visits.
func (t *Tree) Policy() map[game.Move]float64 {
	root := &t.nodes[0]
	policy := make(map[game.Move]float64, len(root.children))
	if root.visits == 0 {
		return policy
	}
	for _, c := range root.children {
		policy[t.nodes[c].move] = float64(t.nodes[c].visits) / float64(root.visits)
	}
	return policy
}

// expand computes the legal moves of node i once.
func (t *Tree) expand(i int) {
	n := &t.nodes[i]
	if n.expanded {
		return
	}
	n.untried = game.LegalMoves(n.state)
	n.expanded = true
}

// fullyExpanded reports whether every legal move of node i has a child. A node
// without legal moves is terminal, not fully expanded.
func (t *Tree) fullyExpanded(i int) bool {
	n := &t.nodes[i]
	return len(n.children) > 0 && len(n.untried) == 0
}

// selectThenExpand descends from the root by UCT while nodes are fully
// expanded, then adds one child for a random untried move. It returns the
// index of the node to roll out from.
func (t *Tree) selectThenExpand(rng Random) int {
	i := 0
	t.expand(i)
	for t.fullyExpanded(i) {
		i = t.pickChild(i)
		t.expand(i)
	}

	if len(t.nodes[i].untried) == 0 { // Terminal node
		return i
	}
	return t.addChild(i, rng)
}

func (t *Tree) addChild(parent int, rng Random) int {
	p := &t.nodes[parent]
	k := rng.Intn(len(p.untried))
	move := p.untried[k]
	last := len(p.untried) - 1
	p.untried[k] = p.untried[last]
	p.untried = p.untried[:last]

	state, _ := p.state.Apply(move)
	child := node{
		parent: parent,
		move:   move,
		state:  state,
		mover:  p.state.Turn,
	}

	index := len(t.nodes)
	t.nodes = append(t.nodes, child)
	// p may be stale after append
	t.nodes[parent].children = append(t.nodes[parent].children, index)
	return index
}

// pickChild returns the child of i with the highest UCT score, the first one
// on ties.
func (t *Tree) pickChild(i int) int {
	n := &t.nodes[i]
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(t.cSquared, float64(n.visits))
	best := -1
	bestScore := 0.0
	for _, c := range n.children {
		child := &t.nodes[c]
		score := policy.evaluate(float64(child.wins), float64(child.visits))
		if best == -1 || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// backup records a rollout result on every node from i up to the root. A node
// scores a win when the winner is the player who moved into it. On undecided
// nodes that is the same as the winner differing from the player to move, but
// a climb-won node keeps the climber to move, so the mover is what counts.
// A rollout abandoned at the ceiling (NoPlayer) only adds visits.
func (t *Tree) backup(i int, winner game.Player) {
	for i != noParent {
		n := &t.nodes[i]
		n.visits++
		if winner != game.NoPlayer && n.mover == winner {
			n.wins++
		}
		i = n.parent
	}
}
