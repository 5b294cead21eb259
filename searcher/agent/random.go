package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.GameState) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions()
	if state.IsTerminal() || len(actions) == 0 {
		return 0, metrics.SearchMetric{}, errors.Wrapf(game.ErrNoLegalMoves, "random move for %s", state.Player())
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
