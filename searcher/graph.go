package searcher

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the nodes of t down to maxDepth as a Graphviz digraph.
// Each node is labelled with its action, visits and win/loss tally.
func (t *Tree) ToDot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("MCTS"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: RootID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := g.AddNode("MCTS", dotName(f.id), map[string]string{
			"shape": "box",
			"label": t.dotLabel(f.id),
		}); err != nil {
			return "", err
		}
		if parent := t.Parent(f.id); parent != NoNode {
			if err := g.AddEdge(dotName(parent), dotName(f.id), true, nil); err != nil {
				return "", err
			}
		}

		if f.depth >= maxDepth {
			continue
		}
		children := t.Children(f.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: children[i], depth: f.depth + 1})
		}
	}
	return g.String(), nil
}

func dotName(id NodeID) string {
	return fmt.Sprintf("n%d", id)
}

func (t *Tree) dotLabel(id NodeID) string {
	wins, losses := t.Results(id)
	move := "root"
	if id != RootID {
		move = t.Action(id).String()
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%s\nN=%d W=%d L=%d", move, t.Visits(id), wins, losses))
}
