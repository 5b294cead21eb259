package agent

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type humanAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewHumanAgent returns an agent that reads moves in notation such as "E4" from in,
// prompting again until a legal move is entered.
func NewHumanAgent(in io.Reader, out io.Writer) Agent {
	return &humanAgent{in: bufio.NewScanner(in), out: out}
}

func (a *humanAgent) FindMove(state game.GameState) (game.Action, metrics.SearchMetric, error) {
	if state.IsOver() {
		return 0, metrics.SearchMetric{}, errors.Wrapf(game.ErrNoLegalMoves, "human move for %s", state.Player())
	}

	for {
		fmt.Fprintf(a.out, "%v", state)
		fmt.Fprintf(a.out, "Player %s, enter your move: ", state.Player())
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return 0, metrics.SearchMetric{}, errors.Wrap(err, "read move")
			}
			return 0, metrics.SearchMetric{}, errors.Wrap(io.ErrUnexpectedEOF, "read move")
		}

		action, err := game.ParseAction(a.in.Text())
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input format.")
			continue
		}
		allowed := state.Allowed()
		if !slices.Contains(allowed, action.Subboard()) {
			fmt.Fprintf(a.out, "Invalid sub-board. Must play in %s\n", labelsOf(allowed))
			continue
		}
		if state.At(action) != game.Empty {
			fmt.Fprintln(a.out, "Cell is already taken.")
			continue
		}
		if _, err := state.ApplyMove(action); err != nil {
			fmt.Fprintln(a.out, "Sub-board is already captured.")
			continue
		}
		return action, metrics.SearchMetric{}, nil
	}
}

func labelsOf(subboards []int) string {
	labels := make([]string, len(subboards))
	for i, sub := range subboards {
		labels[i] = game.SubboardLabel(sub)
	}
	return "[" + strings.Join(labels, " ") + "]"
}
