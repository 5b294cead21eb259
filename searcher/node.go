package searcher

import (
	"uttt/game"
)

// NodeID indexes a node inside its Tree
type NodeID int

const (
	RootID NodeID = 0
	NoNode NodeID = -1
)

type node struct {
	state    game.GameState
	parent   NodeID
	action   game.Action // action that produced state from the parent's state
	children []NodeID
	untried  []game.Action
	visits   int
	wins     int // rewards of +1
	losses   int // rewards of -1
}

// Tree is an arena of search nodes linked by index. Nodes are never removed;
// the whole tree is dropped when a search finishes.
type Tree struct {
	nodes []node
}

func newTree(root game.GameState) *Tree {
	t := &Tree{nodes: make([]node, 0, 1024)}
	t.add(root, NoNode, 0)
	return t
}

func (t *Tree) add(state game.GameState, parent NodeID, action game.Action) NodeID {
	var untried []game.Action
	if !state.IsTerminal() { // decided games are never expanded
		untried = state.LegalActions()
	}
	t.nodes = append(t.nodes, node{
		state:   state,
		parent:  parent,
		action:  action,
		untried: untried,
	})
	return NodeID(len(t.nodes) - 1)
}

// expand materializes the last untried action of id as a new child
func (t *Tree) expand(id NodeID) NodeID {
	n := &t.nodes[id]
	last := len(n.untried) - 1
	action := n.untried[last]
	n.untried = n.untried[:last]
	next := n.state.Play(action)

	child := t.add(next, id, action) // may move t.nodes
	t.nodes[id].children = append(t.nodes[id].children, child)
	return child
}

func (t *Tree) isFullyExpanded(id NodeID) bool {
	return len(t.nodes[id].untried) == 0
}

func (t *Tree) isTerminal(id NodeID) bool {
	return t.nodes[id].state.IsTerminal()
}

// bestChild returns the child of id with the highest UCB1 score, first one on ties,
// or NoNode if id has no children.
func (t *Tree) bestChild(id NodeID, c float64) NodeID {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		return NoNode
	}

	policy := newUCT(c, float64(n.visits))
	best := NoNode
	bestScore := 0.0
	for _, child := range n.children {
		score := policy.evaluate(t.Q(child), float64(t.nodes[child].visits))
		if best == NoNode || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// mostVisited returns the child of id with the most visits, first one on ties
func (t *Tree) mostVisited(id NodeID) NodeID {
	best := NoNode
	for _, child := range t.nodes[id].children {
		if best == NoNode || t.nodes[child].visits > t.nodes[best].visits {
			best = child
		}
	}
	return best
}

// backup records reward on id and every ancestor. Rewards are relative to the
// root player, so the same value applies at every level. Draws only count as visits.
func (t *Tree) backup(id NodeID, reward float64) {
	for id != NoNode {
		n := &t.nodes[id]
		n.visits++
		switch {
		case reward > 0:
			n.wins++
		case reward < 0:
			n.losses++
		}
		id = n.parent
	}
}

func (t *Tree) Root() NodeID                         { return RootID }
func (t *Tree) Size() int                            { return len(t.nodes) }
func (t *Tree) Parent(id NodeID) NodeID              { return t.nodes[id].parent }
func (t *Tree) Children(id NodeID) []NodeID          { return t.nodes[id].children }
func (t *Tree) Action(id NodeID) game.Action         { return t.nodes[id].action }
func (t *Tree) State(id NodeID) game.GameState       { return t.nodes[id].state }
func (t *Tree) Visits(id NodeID) int                 { return t.nodes[id].visits }
func (t *Tree) Untried(id NodeID) int                { return len(t.nodes[id].untried) }
func (t *Tree) Results(id NodeID) (wins, losses int) { return t.nodes[id].wins, t.nodes[id].losses }

// Q is wins minus losses
func (t *Tree) Q(id NodeID) float64 {
	return float64(t.nodes[id].wins - t.nodes[id].losses)
}
