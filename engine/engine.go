package engine

import (
	"uttt/experiments/metrics"
	"uttt/game"
)

type Engine interface {
	// Run plays a game until it is decided, stuck, or the turn limit is reached
	Run() (outcome game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
	// State returns the current position
	State() game.GameState
}
