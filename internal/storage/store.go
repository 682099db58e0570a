package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mandel/internal/analysis"
	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/palette"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string         `json:"id"`
	Timestamp     time.Time      `json:"timestamp"`
	Kind          string         `json:"kind"`
	JuliaConstant *fractal.Point `json:"julia_constant,omitempty"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Workers       int            `json:"workers"`
	Strategy      string         `json:"strategy"`
	Center        fractal.Point  `json:"center"`
	Zoom          float64        `json:"zoom"`
	Color         palette.Config `json:"color"`
	Output        string         `json:"output"`
	Format        string         `json:"format"`
	ElapsedMillis int64          `json:"elapsed_ms"`
	Stats         analysis.Stats `json:"stats"`
}

// Run describes a finished render to be recorded.
type Run struct {
	View      fractal.View
	Kind      fractal.Kind
	Color     palette.Config
	Strategy  string
	Output    string
	Format    string
	Elapsed   time.Duration
	Histogram *analysis.Histogram
	Stats     analysis.Stats
}

func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Kind.Variant, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     now,
		Kind:          run.Kind.Variant.String(),
		Width:         run.View.Width,
		Height:        run.View.Height,
		Workers:       run.View.Workers,
		Strategy:      run.Strategy,
		Center:        run.View.Center,
		Zoom:          run.View.Zoom,
		Color:         run.Color,
		Output:        run.Output,
		Format:        run.Format,
		ElapsedMillis: run.Elapsed.Milliseconds(),
		Stats:         run.Stats,
	}
	if run.Kind.IsJulia() {
		c := run.Kind.Constant
		meta.JuliaConstant = &c
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if run.Histogram == nil {
		return runID, nil
	}
	if err := writeHistogram(filepath.Join(runDir, "histogram.csv"), run.Histogram); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeHistogram(path string, h *analysis.Histogram) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"bin", "lo", "hi", "count"}); err != nil {
		return err
	}
	for b, c := range h.Counts {
		lo, hi := h.BinRange(b)
		row := []string{strconv.Itoa(b), strconv.Itoa(lo), strconv.Itoa(hi), strconv.Itoa(c)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"interior", "0", "0", strconv.Itoa(h.Interior)}); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns saved runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistogram rebuilds the histogram saved with a run.
func (s *Store) LoadHistogram(runID string) (*analysis.Histogram, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "histogram.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	h := &analysis.Histogram{
		MaxIterations: meta.Color.MaxIterations,
		Total:         meta.Stats.Pixels,
	}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 4 {
			return nil, fmt.Errorf("histogram.csv line %d: expected 4 fields, got %d", i+1, len(record))
		}

		count, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("histogram.csv line %d: %w", i+1, err)
		}
		if record[0] == "interior" {
			h.Interior = count
			continue
		}
		h.Counts = append(h.Counts, count)
	}

	return h, nil
}
