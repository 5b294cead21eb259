package game

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewGameState(t *testing.T) {
	state := NewGameState()

	require.Equal(t, []int{Center}, state.Allowed(), "Only the center sub-board should be allowed")
	require.Equal(t, X, state.Player(), "X should move first")
	require.Equal(t, 1, state.PlayerTurn(), "Player 1 should move first")
	require.Equal(t, Captured{}, state.Captured(), "No sub-board should be captured")
	require.Equal(t, InProgress, state.Winner(), "Game should be in progress")
	require.False(t, state.IsTerminal(), "Game should not be over")

	want := []Action{36, 37, 38, 39, 40, 41, 42, 43, 44}
	require.Empty(t, cmp.Diff(want, state.LegalActions()), "Opening moves should be the center sub-board cells")
}

func TestGameStatePlay(t *testing.T) {
	t.Run("routing center of center back to the center", func(t *testing.T) {
		state := NewGameState()
		require.Contains(t, state.LegalActions(), Action(40), "Center of center should be legal")

		next := state.Play(40)

		require.Equal(t, []int{4}, next.Allowed(), "Opponent should be sent to the center sub-board")
		require.Equal(t, O, next.Player(), "Turn should pass to O")
		require.Equal(t, X, next.At(40), "Cell should hold X")
	})

	t.Run("leaving the receiver untouched", func(t *testing.T) {
		state := NewGameState()
		before := state.Board()

		next := state.Play(36)

		require.Equal(t, before, state.Board(), "Receiver board should not change")
		require.Equal(t, []int{Center}, state.Allowed(), "Receiver allowed sub-boards should not change")
		require.Equal(t, X, state.Player(), "Receiver turn should not change")
		require.Equal(t, X, next.At(36), "New state should hold the mark")
	})

	t.Run("keeping allowed sub-boards independent between states", func(t *testing.T) {
		state := NewGameState()
		allowed := state.Allowed()
		allowed[0] = 7

		require.Equal(t, []int{Center}, state.Allowed(), "Callers should not alias internal state")
	})

	t.Run("capturing a sub-board once and for all", func(t *testing.T) {
		var board Board
		board[0] = SubBoard{
			X, X, Empty,
			X, Empty, Empty,
			Empty, Empty, Empty,
		}
		state := NewGameStateFrom(board, []int{0}, Captured{}, X)

		captured := state.Play(NewAction(0, 2))
		require.Equal(t, X, captured.Captured()[0], "Top row should capture for X")

		// O completes the bottom row of the same sub-board
		board = captured.Board()
		board[0][6] = O
		board[0][7] = O
		later := NewGameStateFrom(board, []int{0}, captured.Captured(), O).Play(NewAction(0, 8))

		require.Equal(t, O, later.At(NewAction(0, 8)), "Cell should still be filled")
		require.Equal(t, X, later.Captured()[0], "Capture should stay with X")
	})

	t.Run("ending the game on a line of captured sub-boards", func(t *testing.T) {
		var board Board
		board[2] = SubBoard{X, X}
		state := NewGameStateFrom(board, []int{2}, Captured{0: X, 1: X}, X)

		next := state.Play(NewAction(2, 2))

		require.Equal(t, WinnerX, next.Winner(), "X should win the top row")
		require.True(t, next.IsTerminal(), "Game should be over")
	})

	t.Run("emptying allowed sub-boards when routing fails", func(t *testing.T) {
		var board Board
		board[0] = SubBoard{
			X, O, X,
			Empty, O, O,
			O, X, X,
		}
		captured := Captured{Empty, X, O, O, X, X, X, O, O}
		state := NewGameStateFrom(board, []int{0}, captured, X)

		next := state.Play(NewAction(0, 3))

		require.NotNil(t, next.Allowed(), "Allowed should be empty, not nil")
		require.Empty(t, next.Allowed(), "No sub-board should be allowed")
		require.Empty(t, next.LegalActions(), "No legal actions should remain")
		require.True(t, next.IsDeadEnd(), "Undecided game without moves is a dead end")
		require.True(t, next.IsOver(), "Dead end is over")
		require.Equal(t, InProgress, next.Winner(), "Dead end has no winner")
	})
}

func TestGameStateApplyMove(t *testing.T) {
	t.Run("accepting a legal action", func(t *testing.T) {
		state := NewGameState()
		next, err := state.ApplyMove(40)

		require.NoError(t, err)
		require.Equal(t, state.Play(40), next, "ApplyMove should agree with Play")
	})

	t.Run("rejecting an action outside the allowed sub-boards", func(t *testing.T) {
		state := NewGameState()
		next, err := state.ApplyMove(0)

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, state, next, "State should be returned unchanged")
	})

	t.Run("rejecting a taken cell", func(t *testing.T) {
		state := NewGameState().Play(40)
		_, err := state.ApplyMove(40)

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("rejecting an out of range action", func(t *testing.T) {
		_, err := NewGameState().ApplyMove(81)

		require.ErrorIs(t, err, ErrIllegalMove)
	})
}

func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		state := NewGameState()
		for !state.IsOver() {
			actions := state.LegalActions()
			action := actions[rng.Intn(len(actions))]
			next := state.Play(action)

			prevBoard, nextBoard := state.Board(), next.Board()
			for sub := range prevBoard {
				for cell, c := range prevBoard[sub] {
					if c != Empty {
						require.Equal(t, c, nextBoard[sub][cell], "Set cells should never change")
					}
				}
				if owner := state.Captured()[sub]; owner != Empty {
					require.Equal(t, owner, next.Captured()[sub], "Captures should never change")
				}
			}
			require.Equal(t, state.Player().Opponent(), next.Player(), "Turn should alternate")
			for _, a := range next.LegalActions() {
				require.Equal(t, Empty, next.At(a), "Legal actions should target empty cells")
				require.Equal(t, Empty, next.Captured()[a.Subboard()], "Legal actions should avoid captured sub-boards")
			}
			state = next
		}
	}
}

func TestGameStateFormat(t *testing.T) {
	state := NewGameState().Play(40)
	out := fmt.Sprintf("%v", state)

	require.Contains(t, out, "*E*", "Allowed sub-board should be highlighted")
	require.Contains(t, out, " X ", "Played mark should be drawn")
}
