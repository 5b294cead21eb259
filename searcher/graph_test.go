package searcher

import (
	"strings"
	"testing"

	"uttt/game"

	"github.com/stretchr/testify/require"
)

func TestTreeToDot(t *testing.T) {
	tree := newTree(game.NewGameState())
	child := tree.expand(RootID)
	grandchild := tree.expand(child)
	tree.backup(grandchild, Win)
	tree.expand(RootID)

	t.Run("rendering the whole tree", func(t *testing.T) {
		dot, err := tree.ToDot(2)

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(dot, "digraph MCTS"), "Graph should be directed")
		require.Contains(t, dot, "n0->n1", "Root should link to its first child")
		require.Contains(t, dot, "n1->n2", "Child should link to the grandchild")
		require.Contains(t, dot, "E8", "Labels should use move notation")
	})

	t.Run("cutting off below the depth limit", func(t *testing.T) {
		dot, err := tree.ToDot(1)

		require.NoError(t, err)
		require.Contains(t, dot, "n0->n3", "Root children should be drawn")
		require.NotContains(t, dot, "n1->n2", "Grandchildren should be cut off")
	})
}
