package searcher

import (
	"uttt/game"

	"golang.org/x/exp/rand"
)

// RolloutPolicy picks the next action of a simulated game. actions is never empty.
type RolloutPolicy func(state game.GameState, actions []game.Action, rng *rand.Rand) game.Action

// RandomPolicy plays uniformly at random
func RandomPolicy(state game.GameState, actions []game.Action, rng *rand.Rand) game.Action {
	return actions[rng.Intn(len(actions))]
}

// HeuristicPolicy plays, in order of preference:
//  1. a move capturing a sub-board for the mover
//  2. a move on a cell that would capture a sub-board for the opponent
//  3. a move sending the opponent to an uncaptured sub-board, center cells first
//  4. a center cell anywhere, then any move
func HeuristicPolicy(state game.GameState, actions []game.Action, rng *rand.Rand) game.Action {
	player := state.Player()
	board := state.Board()
	captured := state.Captured()

	for _, action := range actions {
		if capturesFor(&board, action, player) {
			return action
		}
	}

	opponent := player.Opponent()
	for _, action := range actions {
		if capturesFor(&board, action, opponent) {
			return action
		}
	}

	var open []game.Action
	for _, action := range actions {
		if captured[action.Cell()] == game.Empty {
			open = append(open, action)
		}
	}
	if len(open) > 0 {
		if centers := centerActions(open); len(centers) > 0 {
			return centers[rng.Intn(len(centers))]
		}
		return open[rng.Intn(len(open))]
	}

	if centers := centerActions(actions); len(centers) > 0 {
		return centers[rng.Intn(len(centers))]
	}
	return actions[rng.Intn(len(actions))]
}

// capturesFor reports whether player marking action would complete a line in its sub-board
func capturesFor(board *game.Board, action game.Action, player game.Cell) bool {
	sb := board[action.Subboard()]
	sb[action.Cell()] = player
	return game.DetectCapture(sb) == player
}

func centerActions(actions []game.Action) []game.Action {
	var centers []game.Action
	for _, action := range actions {
		if action.Cell() == game.Center {
			centers = append(centers, action)
		}
	}
	return centers
}
