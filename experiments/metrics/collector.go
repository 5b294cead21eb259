package metrics

import (
	"time"

	"uttt/game"
)

// Decision names the rule used to pick the final move of a search
type Decision string

const (
	MostVisited    Decision = "most_visited"    // robustness criterion met
	BestValue      Decision = "best_value"      // under-explored tree, highest mean reward
	RandomFallback Decision = "random_fallback" // root never expanded
)

type SearchMetric struct {
	Budget       time.Duration
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // rollouts that reached a decided game
	DeadEnds     int // rollouts stopped without legal moves or winner
	TreeSize     int
	RootVisits   int
	BestVisits   int
	Decision     Decision
}

type MoveMetric struct {
	Step   int
	Player game.Cell
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Cell
	Outcome        game.Outcome
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(budget time.Duration)
	AddEpisode()
	AddFullPlayout()
	AddDeadEnd()
	Complete(treeSize, rootVisits, bestVisits int, decision Decision) SearchMetric
}

// collector is only ever driven by one search loop, so it needs no synchronization
type collector struct {
	budget       time.Duration
	startTime    time.Time
	episodes     int
	fullPlayouts int
	deadEnds     int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget time.Duration) {
	m.startTime = time.Now()
	m.budget = budget
	m.episodes = 0
	m.fullPlayouts = 0
	m.deadEnds = 0
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) AddDeadEnd() {
	m.deadEnds++
}

func (m *collector) Complete(treeSize, rootVisits, bestVisits int, decision Decision) SearchMetric {
	return SearchMetric{
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		DeadEnds:     m.deadEnds,
		TreeSize:     treeSize,
		RootVisits:   rootVisits,
		BestVisits:   bestVisits,
		Decision:     decision,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget time.Duration) {}
func (m *dummyCollector) AddEpisode()                {}
func (m *dummyCollector) AddFullPlayout()            {}
func (m *dummyCollector) AddDeadEnd()                {}
func (m *dummyCollector) Complete(treeSize, rootVisits, bestVisits int, decision Decision) SearchMetric {
	return SearchMetric{Decision: decision}
}
