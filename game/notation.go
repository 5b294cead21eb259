package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

const labels = "ABCDEFGHI"

// String renders an action as a sub-board letter A-I followed by a cell digit 0-8, e.g. "E4".
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return fmt.Sprintf("%c%d", labels[a.Subboard()], a.Cell())
}

// ParseAction parses notation such as "E4" or " c7 ".
func ParseAction(s string) (Action, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return 0, errors.Wrapf(ErrBadNotation, "%q: want a letter A-I and a digit 0-8", s)
	}
	sub := strings.IndexByte(labels, s[0])
	if sub < 0 {
		return 0, errors.Wrapf(ErrBadNotation, "%q: unknown sub-board %c", s, s[0])
	}
	if s[1] < '0' || s[1] > '8' {
		return 0, errors.Wrapf(ErrBadNotation, "%q: cell must be 0-8", s)
	}
	return NewAction(sub, int(s[1]-'0')), nil
}

// SubboardLabel returns the letter naming sub-board i.
func SubboardLabel(i int) string {
	return labels[i : i+1]
}

// Format draws the board. Allowed sub-boards are marked *A*, captured ones [X] or [O].
func (gs GameState) Format(s fmt.State, c rune) {
	for bigRow := 0; bigRow < 3; bigRow++ {
		for bigCol := 0; bigCol < 3; bigCol++ {
			idx := bigRow*3 + bigCol
			label := " " + SubboardLabel(idx) + " "
			switch {
			case slices.Contains(gs.allowed, idx):
				label = "*" + SubboardLabel(idx) + "*"
			case gs.captured[idx] != Empty:
				label = "[" + gs.captured[idx].String() + "]"
			}
			fmt.Fprintf(s, "    %s    ", label)
			if bigCol < 2 {
				fmt.Fprint(s, "||")
			}
		}
		fmt.Fprintln(s)
		for smallRow := 0; smallRow < 3; smallRow++ {
			for bigCol := 0; bigCol < 3; bigCol++ {
				sb := gs.board[bigRow*3+bigCol]
				start := smallRow * 3
				fmt.Fprintf(s, " %s | %s | %s ", sb[start], sb[start+1], sb[start+2])
				if bigCol < 2 {
					fmt.Fprint(s, "||")
				}
			}
			fmt.Fprintln(s)
		}
		if bigRow < 2 {
			fmt.Fprintln(s, strings.Repeat("=", 37))
		}
	}
}
