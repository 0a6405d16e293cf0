package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

var traceHeader = []string{"tick", "ripples", "pulse", "min_y", "max_y", "mean_y", "mean_displacement", "peak_displacement"}

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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Count     int                `json:"count"`
	Ticks     int                `json:"ticks"`
	Ripples   int                `json:"ripples"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json and trace.csv and
// returns the run id.
func (s *Store) Save(meta RunMetadata, samples []wavefield.Sample) (string, error) {
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 1; exists(runDir); i++ {
		runID = fmt.Sprintf("%s_%d_%d", name, now.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Ticks = len(samples)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrace(csvFile, samples); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteTrace writes samples as CSV with a header row.
func WriteTrace(out io.Writer, samples []wavefield.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Tick),
			strconv.Itoa(s.Ripples),
			formatFloat(s.Pulse),
			formatFloat(s.MinY),
			formatFloat(s.MaxY),
			formatFloat(s.MeanY),
			formatFloat(s.MeanDisplacement),
			formatFloat(s.PeakDisplacement),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads back the samples of a run. Malformed rows are skipped.
func (s *Store) LoadTrace(runID string) ([]wavefield.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []wavefield.Sample{}, nil
	}

	samples := make([]wavefield.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(traceHeader) {
			continue
		}
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		ripples, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		vals := make([]float64, 0, 6)
		for _, f := range record[2:8] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) != 6 {
			continue
		}
		samples = append(samples, wavefield.Sample{
			Tick:             tick,
			Ripples:          ripples,
			Pulse:            vals[0],
			MinY:             vals[1],
			MaxY:             vals[2],
			MeanY:            vals[3],
			MeanDisplacement: vals[4],
			PeakDisplacement: vals[5],
		})
	}
	return samples, nil
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
