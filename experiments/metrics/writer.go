package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	Strategies []string
	GameMetric
}

type MoveRecord struct {
	Game uuid.UUID // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory under root for one experiment.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores the experiment configuration as indented JSON.
func (w *Writer) WriteSetup(setup any) error {
	data, err := json.MarshalIndent(setup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	path := filepath.Join(w.baseDir, "setup.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "strategies", "taker", "bid", "score0", "score1", "score2", "score3", "moves", "start_time", "end_time", "duration"}
	return w.writeCSV("game_records.csv", header, len(records), func(i int) []string {
		r := records[i]
		row := []string{
			r.ID.String(),
			fmt.Sprint(r.Strategies),
			strconv.Itoa(r.Taker),
			r.Bid,
		}
		for _, s := range r.Scores {
			row = append(row, strconv.FormatFloat(s, 'f', -1, 64))
		}
		return append(row,
			strconv.Itoa(r.Moves),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
		)
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "phase", "action", "strategy", "duration", "iterations", "nodes_created", "simulations", "nodes_expanded", "determinizations", "tree_size", "is_tree_reused"}
	return w.writeCSV("move_records.csv", header, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.Game.String(),
			strconv.Itoa(r.Step),
			strconv.Itoa(r.Player),
			r.Phase,
			r.Action,
			r.Strategy,
			r.Duration.String(),
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.NodesCreated),
			strconv.Itoa(r.Simulations),
			strconv.Itoa(r.NodesExpanded),
			strconv.Itoa(r.Determinizations),
			strconv.Itoa(r.TreeSize),
			strconv.FormatBool(r.IsTreeReused),
		}
	})
}

func (w *Writer) WriteMetricRecords(records []MetricRecord) error {
	header := []string{"game", "name", "phase", "player", "value"}
	return w.writeCSV("metric_records.csv", header, len(records), func(i int) []string {
		r := records[i]
		return []string{r.Game.String(), r.Name, r.Phase, strconv.Itoa(r.Player), strconv.Itoa(r.Value)}
	})
}

func (w *Writer) writeCSV(name string, header []string, n int, row func(int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
