package game

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when an action is not among the state's legal actions
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoLegalMoves is returned when a move is requested from a state that has none
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrBadNotation is returned when a move string cannot be parsed
	ErrBadNotation = errors.New("bad move notation")
)
