package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// AgentConfig describes one arena contestant.
type AgentConfig struct {
	ID          int
	Iterations  int
	Duration    time.Duration
	Exploration float64
	Seed        uint64
	Temperature float64 // Samples root moves by visits when positive
	Random      bool    // Plays uniformly random legal moves instead of searching
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MatchupResult tallies the games played between two agents.
type MatchupResult struct {
	Agent1     int
	Agent2     int
	Games      int
	Wins1      int
	Wins2      int
	Unfinished int
}

type Setup struct {
	Matchups  [][2]AgentConfig `json:"matchups"`
	NumGames  int              `json:"numGames"` // per matchup
	StartTime time.Time        `json:"startTime"`
	EndTime   time.Time        `json:"endTime"`
	Duration  time.Duration    `json:"duration"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder for one experiment under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir returns the folder the writer stores files in.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(start, end time.Time, matchups [][2]AgentConfig, numGames int) error {
	setup := Setup{
		Matchups:  matchups,
		NumGames:  numGames,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "iterations", "duration", "exploration", "seed", "temperature", "random"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Iterations),
			config.Duration.String(),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.FormatUint(config.Seed, 10),
			strconv.FormatFloat(config.Temperature, 'f', -1, 64),
			strconv.FormatBool(config.Random),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			record.Winner.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "duration", "budget", "episodes", "full_playouts", "tree_size"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Move.String(),
			record.Duration.String(),
			strconv.Itoa(record.Budget),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.TreeSize),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteWinRateChart renders the matchup tallies as an HTML bar chart.
func (w *Writer) WriteWinRateChart(results []MatchupResult) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Win rates",
			Subtitle: "agent1 vs agent2",
		}),
	)

	labels := make([]string, 0, len(results))
	wins1 := make([]opts.BarData, 0, len(results))
	wins2 := make([]opts.BarData, 0, len(results))
	unfinished := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		labels = append(labels, fmt.Sprintf("%d vs %d", r.Agent1, r.Agent2))
		wins1 = append(wins1, opts.BarData{Value: rate(r.Wins1, r.Games)})
		wins2 = append(wins2, opts.BarData{Value: rate(r.Wins2, r.Games)})
		unfinished = append(unfinished, opts.BarData{Value: rate(r.Unfinished, r.Games)})
	}
	bar.SetXAxis(labels).
		AddSeries("agent1", wins1).
		AddSeries("agent2", wins2).
		AddSeries("unfinished", unfinished)

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := os.Create(filepath.Join(w.baseDir, "win_rates.html"))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func rate(n, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(n) / float64(games)
}
