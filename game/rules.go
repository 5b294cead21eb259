package game

import "golang.org/x/exp/slices"

// SubBoard holds 9 cells in row-major order (index = row*3 + col)
type SubBoard [NumCells]Cell

// Board holds the 9 sub-boards, in the same row-major order
type Board [NumSubboards]SubBoard

// Captured maps each sub-board to its owner, Empty while undecided
type Captured [NumSubboards]Cell

// lines are the 8 winning lines of a 3x3 grid: rows, columns, diagonals
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// threeInRow returns the mark filling any line of grid, first line first. Empty never matches.
func threeInRow(grid *[9]Cell) Cell {
	for _, line := range lines {
		c := grid[line[0]]
		if c != Empty && grid[line[1]] == c && grid[line[2]] == c {
			return c
		}
	}
	return Empty
}

// DetectCapture returns the player owning a complete line of the sub-board, or Empty.
func DetectCapture(sb SubBoard) Cell {
	grid := [9]Cell(sb)
	return threeInRow(&grid)
}

// DetectGlobalEnd applies the line test to the captured sub-boards. Without a
// completed line the game is a draw once no sub-board remains undecided.
func DetectGlobalEnd(captured Captured) Outcome {
	grid := [9]Cell(captured)
	if winner := threeInRow(&grid); winner != Empty {
		return outcomeOf(winner)
	}
	for _, owner := range captured {
		if owner == Empty {
			return InProgress
		}
	}
	return Draw
}

func (sb *SubBoard) IsFull() bool {
	for _, c := range sb {
		if c == Empty {
			return false
		}
	}
	return true
}

// LegalActions lists the empty cells of every allowed sub-board that is not captured,
// ascending by sub-board then cell.
func LegalActions(board *Board, allowed []int, captured Captured) []Action {
	actions := make([]Action, 0, NumCells*len(allowed))
	for sub := 0; sub < NumSubboards; sub++ {
		if !slices.Contains(allowed, sub) || captured[sub] != Empty {
			continue
		}
		for cell, c := range board[sub] {
			if c == Empty {
				actions = append(actions, NewAction(sub, cell))
			}
		}
	}
	return actions
}

// RouteNextAllowed computes the sub-boards the opponent may play in after last.
// The rules short-circuit in order:
//  1. the sub-board named by the played cell, if uncaptured and not full
//  2. if the played sub-board is now full, every uncaptured sub-board that is not full
//  3. the open tiles of the played sub-board (scanned at i%3 + (i/3)*3) that name uncaptured sub-boards
//  4. the played sub-board itself
//
// A nil result means routing failed and the game has no legal continuation.
func RouteNextAllowed(last Action, board *Board, captured Captured) []int {
	target := last.Cell()
	source := last.Subboard()

	if captured[target] == Empty && !board[target].IsFull() {
		return []int{target}
	}

	if board[source].IsFull() {
		var open []int
		for i := 0; i < NumSubboards; i++ {
			if captured[i] == Empty && !board[i].IsFull() {
				open = append(open, i)
			}
		}
		return open
	}

	var open []int
	for i := 0; i < NumCells; i++ {
		if board[source][i%3+(i/3)*3] == Empty && captured[i] == Empty {
			open = append(open, i)
		}
	}
	if len(open) > 0 {
		return open
	}

	return []int{source}
}
