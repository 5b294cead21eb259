package engine

import (
	"time"

	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/meta"
	"uttt/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type localEngine struct {
	state  game.GameState
	agents [2]agent.Agent // X plays agents[0], O plays agents[1]
}

// New returns an engine for a fresh game between two agents.
func New(agents [2]agent.Agent) Engine {
	return NewFrom(game.NewGameState(), agents)
}

// NewFrom returns an engine continuing from state.
func NewFrom(state game.GameState, agents [2]agent.Agent) Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	return &localEngine{state: state, agents: agents}
}

// Run executes the game loop. The outcome stays InProgress when the game ends
// without a winner because no legal move exists or the turn limit is hit.
func (e *localEngine) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting", e.state.Player())

	turn := 1
	for !e.state.IsTerminal() && turn <= meta.MAX_TURNS {
		if e.state.IsDeadEnd() {
			log.Info().Msg("game over: no valid moves")
			break
		}

		player := e.state.Player()
		action, searchMetric, err := e.agents[e.state.PlayerTurn()-1].FindMove(e.state)
		if err != nil {
			return e.state.Winner(), gameMetric, moveMetrics, errors.Wrapf(err, "turn %d", turn)
		}
		next, err := e.state.ApplyMove(action)
		if err != nil {
			return e.state.Winner(), gameMetric, moveMetrics, errors.Wrapf(err, "turn %d", turn)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Action:       action,
			SearchMetric: searchMetric,
		})
		log.Info().Msgf("turn %d: %s played %s", turn, player, action)

		e.state = next
		turn++
	}

	outcome := e.state.Winner()
	gameMetric.Outcome = outcome
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game ended after %d moves: %s", gameMetric.TotalMoves, outcome)
	return outcome, gameMetric, moveMetrics, nil
}

func (e *localEngine) State() game.GameState {
	return e.state
}
