package experiments

import (
	"time"

	"uttt/engine"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"
	"uttt/searcher/agent"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	MCTS   = "mcts"
	Random = "random"
)

var policies = map[string]searcher.RolloutPolicy{
	"":          searcher.HeuristicPolicy,
	"heuristic": searcher.HeuristicPolicy,
	"random":    searcher.RandomPolicy,
}

// Run plays every match up games times, alternating which agent plays X, with
// at most concurrency games in flight. Records are written under
// dir/name/<timestamp>, which is returned.
func Run(dir, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games, concurrency int) (string, error) {
	if games <= 0 {
		panic("games must be positive")
	}
	for _, matchUp := range matchUps {
		for _, config := range matchUp {
			if err := validate(config); err != nil {
				return "", err
			}
		}
	}

	runID := uuid.New()
	start := time.Now()
	log.Info().Msgf("starting %s experiment %s...", name, runID)

	total := len(matchUps) * games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for mi, matchUp := range matchUps {
		for i := 0; i < games; i++ {
			id := mi*games + i
			swapped := i%2 == 1
			x, o := matchUp[0], matchUp[1]
			if swapped {
				x, o = o, x
			}

			g.Go(func() error {
				log.Info().Msgf("starting match up %d of %d game %d of %d...", mi+1, len(matchUps), i+1, games)

				outcome, gameMetric, moveMetrics, err := runGame(x, o, id)
				if err != nil {
					return errors.Wrapf(err, "match up %d game %d", mi+1, i+1)
				}

				gameRecords[id] = metrics.GameRecord{
					ID:         id,
					MatchUp:    mi,
					Agent1:     x.ID,
					Agent2:     o.ID,
					Swapped:    swapped,
					GameMetric: gameMetric,
				}
				for _, mm := range moveMetrics {
					moveRecords[id] = append(moveRecords[id], metrics.MoveRecord{
						Game:       id,
						MoveMetric: mm,
					})
				}

				log.Info().Msgf("completed match up %d of %d game %d: %s", mi+1, len(matchUps), i+1, outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	end := time.Now()
	log.Info().Msgf("completed %s experiment in %s", name, end.Sub(start))

	var moves []metrics.MoveRecord
	for _, records := range moveRecords {
		moves = append(moves, records...)
	}
	summaries := metrics.Summarize(matchUps, gameRecords)

	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}

	ids := make([][2]int, len(matchUps))
	for i, matchUp := range matchUps {
		ids[i] = [2]int{matchUp[0].ID, matchUp[1].ID}
	}
	setup := metrics.Setup{
		RunID:       runID.String(),
		Name:        name,
		MatchUps:    ids,
		Games:       games,
		Concurrency: concurrency,
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
	}
	if err := writer.WriteSetup(setup); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", err
	}
	if err := writer.WriteSummary(summaries); err != nil {
		return "", err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame plays a single game with x moving first
func runGame(x, o metrics.AgentConfig, id int) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.New([2]agent.Agent{createAgent(x, id), createAgent(o, id)})
	return e.Run()
}

func validate(config metrics.AgentConfig) error {
	switch config.Kind {
	case Random:
		return nil
	case MCTS, "":
	default:
		return errors.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}
	if _, ok := policies[config.Policy]; !ok {
		return errors.Errorf("agent %d: unknown rollout policy %q", config.ID, config.Policy)
	}
	if config.Duration <= 0 && config.Episodes <= 0 {
		return errors.Errorf("agent %d: needs a duration or an episode cap", config.ID)
	}
	return nil
}

// createAgent builds a fresh agent per game so searches never share state.
// Seeded configs are offset by the game id to vary games reproducibly.
func createAgent(config metrics.AgentConfig, id int) agent.Agent {
	seed := config.Seed + uint64(id)
	if config.Seed == 0 {
		seed = uint64(time.Now().UnixNano()) + uint64(id)
	}
	if config.Kind == Random {
		return agent.NewRandomAgent(seed)
	}

	options := []searcher.Option{
		searcher.WithRolloutPolicy(policies[config.Policy]),
		searcher.WithMetrics(),
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}
	return agent.NewMCTSAgent(searcher.NewMCTS(options...), config.Duration)
}
