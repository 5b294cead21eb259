package agent

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"uttt/game"
	"uttt/searcher"

	"github.com/stretchr/testify/require"
)

func TestMCTSAgent(t *testing.T) {
	t.Run("finding a legal move", func(t *testing.T) {
		state := game.NewGameState()
		a := NewMCTSAgent(searcher.NewMCTS(searcher.WithSeed(1), searcher.WithEpisodes(100), searcher.WithMetrics()), time.Minute)

		action, metric, err := a.FindMove(state)

		require.NoError(t, err)
		require.Contains(t, state.LegalActions(), action, "Agent should return a legal move")
		require.Equal(t, 100, metric.Episodes, "Agent should report search metrics")
	})

	t.Run("passing search errors through", func(t *testing.T) {
		state := game.NewGameStateFrom(game.Board{}, []int{}, game.Captured{}, game.X)
		a := NewMCTSAgent(searcher.NewMCTS(searcher.WithSeed(1)), time.Second)

		_, _, err := a.FindMove(state)

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("playing legal moves reproducibly", func(t *testing.T) {
		state := game.NewGameState()
		a1, a2 := NewRandomAgent(5), NewRandomAgent(5)

		for i := 0; i < 10; i++ {
			m1, _, err := a1.FindMove(state)
			require.NoError(t, err)
			m2, _, err := a2.FindMove(state)
			require.NoError(t, err)

			require.Contains(t, state.LegalActions(), m1, "Agent should return a legal move")
			require.Equal(t, m1, m2, "Same seed should give the same moves")
			state = state.Play(m1)
		}
	})

	t.Run("refusing a decided game", func(t *testing.T) {
		state := game.NewGameStateFrom(game.Board{}, []int{3}, game.Captured{game.O, game.O, game.O}, game.X)

		_, _, err := NewRandomAgent(1).FindMove(state)

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})
}

func TestHumanAgent(t *testing.T) {
	t.Run("reading a legal move", func(t *testing.T) {
		var out bytes.Buffer
		a := NewHumanAgent(strings.NewReader("e4\n"), &out)

		action, _, err := a.FindMove(game.NewGameState())

		require.NoError(t, err)
		require.Equal(t, game.Action(40), action)
		require.Contains(t, out.String(), "Player X, enter your move: ")
	})

	t.Run("prompting again after bad input", func(t *testing.T) {
		var out bytes.Buffer
		state := game.NewGameState().Play(40) // O must play in E, X holds E4
		a := NewHumanAgent(strings.NewReader("zz\nA0\nE4\nE5\n"), &out)

		action, _, err := a.FindMove(state)

		require.NoError(t, err)
		require.Equal(t, game.Action(41), action, "First legal entry should be accepted")
		require.Contains(t, out.String(), "Invalid input format.")
		require.Contains(t, out.String(), "Invalid sub-board. Must play in [E]")
		require.Contains(t, out.String(), "Cell is already taken.")
	})

	t.Run("failing when input runs out", func(t *testing.T) {
		a := NewHumanAgent(strings.NewReader("A0\n"), io.Discard)

		_, _, err := a.FindMove(game.NewGameState())

		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}
