package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"uttt/engine"
	"uttt/experiments"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/meta"
	"uttt/searcher"
	"uttt/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Seats per mode: h = human, a = MCTS, r = random
var modes = map[string][2]byte{
	"PvP": {'h', 'h'},
	"PvA": {'h', 'a'},
	"AvP": {'a', 'h'},
	"AvA": {'a', 'a'},
	"RvA": {'r', 'a'},
	"AvR": {'a', 'r'},
}

func main() {
	mode := flag.String("mode", "AvA", "PvP, PvA, AvP, AvA, RvA, AvR or experiment")
	duration := flag.Duration("duration", meta.DURATION, "Search time per move")
	episodes := flag.Int("episodes", 0, "Cap on search episodes per move, 0 for none")
	seed := flag.Uint64("seed", 0, "Random seed, 0 for a time based seed")
	exploration := flag.Float64("exploration", searcher.Exploration, "UCB1 exploration constant")
	games := flag.Int("games", meta.GAMES, "Games per match up in experiment mode")
	concurrency := flag.Int("concurrency", meta.GO_ROUTINES, "Concurrent games in experiment mode")
	dot := flag.String("dot", "", "Write the search tree of the last AI move to this Graphviz file")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *mode == "experiment" {
		runExperiment(*duration, *episodes, *seed, *exploration, *games, *concurrency)
		return
	}

	seats, ok := modes[*mode]
	if !ok {
		fmt.Println("Invalid mode. Choose from: PvP, PvA, AvP, AvA, RvA, AvR, experiment")
		os.Exit(2)
	}

	var mcts *searcher.MCTS
	var agents [2]agent.Agent
	for i, seat := range seats {
		switch seat {
		case 'h':
			agents[i] = agent.NewHumanAgent(os.Stdin, os.Stdout)
		case 'r':
			agents[i] = agent.NewRandomAgent(randomSeed(*seed))
		case 'a':
			mcts = createMCTS(*episodes, *seed, *exploration)
			agents[i] = agent.NewMCTSAgent(mcts, *duration)
		}
	}

	e := engine.New(agents)
	outcome, _, _, err := e.Run()
	fmt.Printf("%v", e.State())
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}

	switch outcome {
	case game.WinnerX:
		fmt.Println("X wins!")
	case game.WinnerO:
		fmt.Println("O wins!")
	case game.Draw:
		fmt.Println("Game is a draw!")
	default:
		fmt.Println("Game over: no valid moves.")
	}

	if *dot != "" && mcts != nil && mcts.LastTree() != nil {
		writeDot(*dot, mcts.LastTree())
	}
}

func randomSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

func createMCTS(episodes int, seed uint64, exploration float64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithExploration(exploration)}
	if episodes > 0 {
		options = append(options, searcher.WithEpisodes(episodes))
	}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}
	return searcher.NewMCTS(options...)
}

func writeDot(path string, tree *searcher.Tree) {
	graph, err := tree.ToDot(2)
	if err != nil {
		log.Error().Err(err).Msg("failed to render search tree")
		return
	}
	if err := os.WriteFile(path, []byte(graph), 0644); err != nil {
		log.Error().Err(err).Msg("failed to write search tree")
		return
	}
	log.Info().Msgf("wrote search tree to %s", path)
}

// runExperiment pits the configured MCTS agent against a random agent and
// against an MCTS agent with random rollouts.
func runExperiment(duration time.Duration, episodes int, seed uint64, exploration float64, games, concurrency int) {
	heuristic := metrics.AgentConfig{ID: 1, Kind: experiments.MCTS, Duration: duration, Episodes: episodes, Seed: seed, Exploration: exploration, Policy: "heuristic"}
	random := metrics.AgentConfig{ID: 2, Kind: experiments.Random, Seed: seed}
	randomRollout := metrics.AgentConfig{ID: 3, Kind: experiments.MCTS, Duration: duration, Episodes: episodes, Seed: seed, Exploration: exploration, Policy: "random"}

	configs := []metrics.AgentConfig{heuristic, random, randomRollout}
	matchUps := [][2]metrics.AgentConfig{
		{heuristic, random},
		{heuristic, randomRollout},
	}

	if _, err := experiments.Run("experiments", "rollout_policy", configs, matchUps, games, concurrency); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
