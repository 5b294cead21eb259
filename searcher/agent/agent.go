package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"
)

type Agent interface {
	// FindMove returns the move to play from state and search metrics (if collected)
	FindMove(state game.GameState) (game.Action, metrics.SearchMetric, error)
}
