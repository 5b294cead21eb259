package agent

import (
	"time"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"

	"github.com/rs/zerolog/log"
)

type mctsAgent struct {
	mcts   *searcher.MCTS
	budget time.Duration
}

// NewMCTSAgent returns an agent that searches every position for budget.
func NewMCTSAgent(mcts *searcher.MCTS, budget time.Duration) Agent {
	return mctsAgent{mcts: mcts, budget: budget}
}

func (a mctsAgent) FindMove(state game.GameState) (game.Action, metrics.SearchMetric, error) {
	action, metric, err := a.mcts.Search(state, a.budget)
	if err != nil {
		return 0, metric, err
	}
	log.Info().Msgf("[MCTS] completed %d episodes, playing %s (%s)", metric.Episodes, action, metric.Decision)
	return action, metric, nil
}
