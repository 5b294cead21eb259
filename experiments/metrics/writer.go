package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"uttt/game"

	"github.com/pkg/errors"
)

// AgentConfig describes one competitor of an experiment
type AgentConfig struct {
	ID          int
	Kind        string // "mcts" or "random"
	Duration    time.Duration
	Episodes    int
	Seed        uint64 // 0 means unseeded
	Exploration float64
	Policy      string // rollout policy name, MCTS only
}

type GameRecord struct {
	ID      int
	MatchUp int  // index into the experiment's match ups
	Agent1  int  // AgentConfig.ID playing X
	Agent2  int  // AgentConfig.ID playing O
	Swapped bool // the match up's second agent played X
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Summary tallies the results of one match up from the point of view of its two agents
type Summary struct {
	MatchUp    int
	AgentA     int
	AgentB     int
	Games      int
	WinsA      int
	WinsB      int
	Draws      int
	Unfinished int // stopped without a winner before every sub-board was decided
}

// Setup is the experiment metadata stored next to the records
type Setup struct {
	RunID       string        `json:"runId"`
	Name        string        `json:"name"`
	MatchUps    [][2]int      `json:"matchUps"` // agent ids
	Games       int           `json:"games"`    // per match up
	Concurrency int           `json:"concurrency"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Duration    time.Duration `json:"duration"`
}

// Summarize groups records by match up, in match up order.
func Summarize(matchUps [][2]AgentConfig, records []GameRecord) []Summary {
	summaries := make([]Summary, len(matchUps))
	for i, matchUp := range matchUps {
		summaries[i] = Summary{MatchUp: i, AgentA: matchUp[0].ID, AgentB: matchUp[1].ID}
	}

	for _, record := range records {
		s := &summaries[record.MatchUp]
		s.Games++

		winner := record.Outcome.Winner()
		switch {
		case record.Outcome == game.Draw:
			s.Draws++
		case winner == game.Empty:
			s.Unfinished++
		case (winner == game.X) != record.Swapped:
			s.WinsA++
		default:
			s.WinsB++
		}
	}
	return summaries
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return errors.Wrap(err, "failed to create setup file")
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return errors.Wrap(err, "failed to write setup")
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "duration", "episodes", "seed", "exploration", "policy"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.FormatUint(config.Seed, 10),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			config.Policy,
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "match_up", "agent1", "agent2", "starting_player", "outcome", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.MatchUp),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			record.Outcome.String(),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "budget", "duration", "episodes", "full_playouts", "dead_ends", "tree_size", "root_visits", "best_visits", "decision"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Action.String(),
			record.Budget.String(),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.DeadEnds),
			strconv.Itoa(record.TreeSize),
			strconv.Itoa(record.RootVisits),
			strconv.Itoa(record.BestVisits),
			string(record.Decision),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteSummary(summaries []Summary) error {
	header := []string{"match_up", "agent_a", "agent_b", "games", "wins_a", "wins_b", "draws", "unfinished"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.MatchUp),
			strconv.Itoa(s.AgentA),
			strconv.Itoa(s.AgentB),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.WinsA),
			strconv.Itoa(s.WinsB),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Unfinished),
		})
	}
	return w.writeCSV("summary.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	if err := writer.WriteAll(rows); err != nil { // flushes
		return errors.Wrapf(err, "failed to write %s rows", name)
	}
	return nil
}
