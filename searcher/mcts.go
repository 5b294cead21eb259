package searcher

import (
	"math"
	"time"

	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS searches for a move with single-threaded UCT: selection, expansion,
// heuristic rollout and backpropagation, repeated until the time budget runs out.
type MCTS struct {
	duration    time.Duration
	episodes    int
	exploration float64
	seeded      bool
	seed        uint64
	rng         *rand.Rand
	rollout     RolloutPolicy
	metrics     metrics.Collector
	tree        *Tree
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes caps the number of iterations per search, in addition to the time budget.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithSeed makes every search start from the same random sequence.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seeded = true
		m.seed = seed
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.rollout = policy
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: Exploration,
		rollout:     HeuristicPolicy,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if !m.seeded {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// ChooseAction searches from state for at most budget (soft bound) and returns the chosen action.
// A non-positive budget without an episode cap fails with ErrNoBudget. A decided game fails with
// game.ErrNoLegalMoves even if empty cells remain, as does a state without legal actions.
func (m *MCTS) ChooseAction(state game.GameState, budget time.Duration) (game.Action, error) {
	if budget <= 0 && m.episodes <= 0 {
		return 0, errors.Wrapf(ErrNoBudget, "budget %s", budget)
	}
	action, _, err := m.Search(state, budget)
	return action, err
}

// FindNextMove searches with the configured duration.
func (m *MCTS) FindNextMove(state game.GameState) (game.Action, metrics.SearchMetric, error) {
	return m.Search(state, m.duration)
}

// Search builds a fresh tree rooted at state and returns the chosen action with search metrics.
// A non-positive budget with no episode cap is a configuration error.
func (m *MCTS) Search(state game.GameState, budget time.Duration) (game.Action, metrics.SearchMetric, error) {
	if budget <= 0 && m.episodes <= 0 {
		panic("Must specify search duration or episodes")
	}
	if m.seeded {
		m.rng = rand.New(rand.NewSource(m.seed))
	}

	if state.IsOver() {
		return 0, metrics.SearchMetric{}, errors.Wrapf(game.ErrNoLegalMoves, "search from %s to move", state.Player())
	}

	m.tree = newTree(state)
	m.metrics.Start(budget)
	completed := m.run(state.Player(), budget)

	action, decision := m.decide(completed)
	best := m.tree.mostVisited(RootID)
	bestVisits := 0
	if best != NoNode {
		bestVisits = m.tree.Visits(best)
	}
	metric := m.metrics.Complete(m.tree.Size(), m.tree.Visits(RootID), bestVisits, decision)

	log.Debug().
		Int("episodes", completed).
		Int("nodes", m.tree.Size()).
		Str("action", action.String()).
		Str("decision", string(decision)).
		Msg("search complete")
	return action, metric, nil
}

// LastTree returns the tree built by the most recent search, for inspection only.
func (m *MCTS) LastTree() *Tree {
	return m.tree
}

func (m *MCTS) run(rootPlayer game.Cell, budget time.Duration) int {
	start := time.Now()
	completed := 0
	for {
		if m.episodes > 0 && completed >= m.episodes {
			break
		}
		if budget > 0 && time.Since(start) >= budget {
			break
		}

		leaf := m.treePolicy()
		if leaf == NoNode { // Dead end reached by selection
			break
		}
		reward := m.simulate(m.tree.State(leaf), rootPlayer)
		m.tree.backup(leaf, reward)

		completed++
		m.metrics.AddEpisode()
	}
	return completed
}

// treePolicy descends by UCB1 until it finds a node to expand or a terminal node
func (m *MCTS) treePolicy() NodeID {
	id := RootID
	for !m.tree.isTerminal(id) {
		if !m.tree.isFullyExpanded(id) {
			return m.tree.expand(id)
		}
		id = m.tree.bestChild(id, m.exploration)
		if id == NoNode {
			return NoNode
		}
	}
	return id
}

// simulate plays state out with the rollout policy and scores the end for rootPlayer
func (m *MCTS) simulate(state game.GameState, rootPlayer game.Cell) float64 {
	for !state.IsTerminal() {
		actions := state.LegalActions()
		if len(actions) == 0 {
			m.metrics.AddDeadEnd()
			return Draw
		}
		state = state.Play(m.rollout(state, actions, m.rng))
	}
	m.metrics.AddFullPlayout()
	return reward(state.Winner(), rootPlayer)
}

func reward(outcome game.Outcome, rootPlayer game.Cell) float64 {
	switch outcome.Winner() {
	case rootPlayer:
		return Win
	case rootPlayer.Opponent():
		return Loss
	}
	return Draw
}

// decide picks the final action: the most visited child once it is trusted,
// otherwise the child with the best mean reward
func (m *MCTS) decide(completed int) (game.Action, metrics.Decision) {
	root := m.tree.State(RootID)
	if len(m.tree.Children(RootID)) == 0 {
		actions := root.LegalActions()
		log.Warn().Msg("search expanded no children, playing a random legal move")
		return actions[m.rng.Intn(len(actions))], metrics.RandomFallback
	}

	minVisits := math.Max(MinVisits, MinVisitRatio*float64(completed))
	mostVisited := m.tree.mostVisited(RootID)
	if float64(m.tree.Visits(mostVisited)) >= minVisits {
		return m.tree.Action(mostVisited), metrics.MostVisited
	}
	return m.tree.Action(m.tree.bestChild(RootID, 0)), metrics.BestValue
}
