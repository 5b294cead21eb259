package searcher

import "github.com/pkg/errors"

// ErrNoBudget is returned when a search has neither time nor an episode cap to spend
var ErrNoBudget = errors.New("no search budget")
