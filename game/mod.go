package game

import "fmt"

const (
	NumSubboards = 9
	NumCells     = 9
	ActionSpace  = NumSubboards * NumCells
	Center       = 4 // Center cell index of a sub-board
)

// Cell is the content of a single square, also used as the owner of a captured sub-board
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

// Opponent returns the other player's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// Outcome of the game as seen through the captured sub-boards
type Outcome int

const (
	InProgress Outcome = iota
	WinnerX
	WinnerO
	Draw
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case WinnerX:
		return "X wins"
	case WinnerO:
		return "O wins"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Winner returns the winning mark, or Empty for draws and unfinished games.
func (o Outcome) Winner() Cell {
	switch o {
	case WinnerX:
		return X
	case WinnerO:
		return O
	}
	return Empty
}

func outcomeOf(c Cell) Outcome {
	switch c {
	case X:
		return WinnerX
	case O:
		return WinnerO
	}
	return InProgress
}

// Action is a move index 0-80: subboard*9 + cell
type Action int

func NewAction(subboard, cell int) Action {
	return Action(subboard*NumCells + cell)
}

func (a Action) Subboard() int { return int(a) / NumCells }
func (a Action) Cell() int     { return int(a) % NumCells }

func (a Action) Valid() bool {
	return a >= 0 && a < ActionSpace
}
