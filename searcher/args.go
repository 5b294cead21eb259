package searcher

// Hyperparameters for MCTS

const Exploration = 1.4 // UCB1 exploration constant c

// Rewards are always from the perspective of the player to move at the root
const (
	Win  = 1.0
	Loss = -1.0
	Draw = 0.0
)

// The most visited root child is trusted once it has this many visits,
// or MinVisitRatio of all completed episodes if that is larger
const (
	MinVisits     = 50
	MinVisitRatio = 0.05
)
