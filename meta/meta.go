// meta/meta.go
package meta

import "time"

// DURATION defines the default search budget per move.
const DURATION = 2 * time.Second

// MAX_TURNS bounds a game. A game never needs more moves than there are cells.
const MAX_TURNS = 81

// GAMES defines the number of games per experiment match up.
const GAMES = 20

// GO_ROUTINES defines the number of games played concurrently in experiments.
const GO_ROUTINES = 8
