package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// GameState is an immutable snapshot of an Ultimate Tic-Tac-Toe game.
// Transitions return a new value and never modify the receiver.
type GameState struct {
	board    Board
	allowed  []int // replaced on every move, never written in place
	captured Captured
	player   Cell
}

// NewGameState returns the opening position: empty board, X to move in the center sub-board.
func NewGameState() GameState {
	return GameState{
		allowed: []int{Center},
		player:  X,
	}
}

// NewGameStateFrom builds an arbitrary position. allowed is copied.
func NewGameStateFrom(board Board, allowed []int, captured Captured, player Cell) GameState {
	return GameState{
		board:    board,
		allowed:  slices.Clone(allowed),
		captured: captured,
		player:   player,
	}
}

func (gs GameState) Board() Board          { return gs.board }
func (gs GameState) Captured() Captured    { return gs.captured }
func (gs GameState) Allowed() []int        { return slices.Clone(gs.allowed) }
func (gs GameState) Player() Cell          { return gs.player }
func (gs GameState) At(action Action) Cell { return gs.board[action.Subboard()][action.Cell()] }

// PlayerTurn returns 1 when X is to move and 2 when O is.
func (gs GameState) PlayerTurn() int { return int(gs.player) }

func (gs GameState) LegalActions() []Action {
	return LegalActions(&gs.board, gs.allowed, gs.captured)
}

func (gs GameState) Winner() Outcome {
	return DetectGlobalEnd(gs.captured)
}

func (gs GameState) IsTerminal() bool {
	return gs.Winner() != InProgress
}

// IsDeadEnd reports a game that is not decided but has no legal continuation.
func (gs GameState) IsDeadEnd() bool {
	return !gs.IsTerminal() && len(gs.LegalActions()) == 0
}

// IsOver reports whether no further move can be played.
func (gs GameState) IsOver() bool {
	return gs.IsTerminal() || len(gs.LegalActions()) == 0
}

// Play places the current player's mark without validation. Callers must only
// offer actions drawn from LegalActions.
func (gs GameState) Play(action Action) GameState {
	sub, cell := action.Subboard(), action.Cell()

	next := gs // arrays are copied by value
	next.board[sub][cell] = gs.player

	// Capture is final: an owned sub-board never changes hands
	if next.captured[sub] == Empty {
		next.captured[sub] = DetectCapture(next.board[sub])
	}

	next.allowed = RouteNextAllowed(action, &next.board, next.captured)
	if next.allowed == nil {
		next.allowed = []int{}
	}
	next.player = gs.player.Opponent()
	return next
}

// ApplyMove plays action after checking that it is legal.
func (gs GameState) ApplyMove(action Action) (GameState, error) {
	if !action.Valid() {
		return gs, errors.Wrapf(ErrIllegalMove, "action %d out of range", int(action))
	}
	if !slices.Contains(gs.LegalActions(), action) {
		return gs, errors.Wrapf(ErrIllegalMove, "%s by %s", action, gs.player)
	}
	return gs.Play(action), nil
}
