package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

func testSamples() []wavefield.Sample {
	return []wavefield.Sample{
		{Tick: 0, Ripples: 1, MinY: 170, MaxY: 230, MeanY: 200, MeanDisplacement: 12.5, PeakDisplacement: 30},
		{Tick: 1, Ripples: 1, Pulse: -4.25, MinY: 168, MaxY: 232, MeanY: 199.5, MeanDisplacement: 13, PeakDisplacement: 32},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Scenario: "test",
		Seed:     42,
		Width:    800,
		Height:   400,
		Count:    60,
		Metrics:  map[string]float64{"ripple_load": 1.5},
	}
	runID, err := st.Save(meta, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "test_") {
		t.Errorf("unexpected run id %q", runID)
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != runID || got.Seed != 42 || got.Ticks != 2 {
		t.Errorf("unexpected metadata %+v", got)
	}
	if got.Metrics["ripple_load"] != 1.5 {
		t.Errorf("expected ripple_load 1.5, got %f", got.Metrics["ripple_load"])
	}

	samples, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1] != testSamples()[1] {
		t.Errorf("expected %+v, got %+v", testSamples()[1], samples[1])
	}
}

func TestStoreSaveUniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	a, err := st.Save(RunMetadata{Scenario: "dup"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(RunMetadata{Scenario: "dup"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct ids, got %q twice", a)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	if _, err := st.Save(RunMetadata{Scenario: "a"}, testSamples()); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(RunMetadata{}, testSamples()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadTraceSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runDir := filepath.Join(dir, "manual")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	csv := strings.Join(traceHeader, ",") + "\n" +
		"0,0,0,1,2,3,4,5\n" +
		"x,0,0,1,2,3,4,5\n" +
		"2,0,0,1\n"
	if err := os.WriteFile(filepath.Join(runDir, "trace.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	samples, err := st.LoadTrace("manual")
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(samples) != 1 || samples[0].PeakDisplacement != 5 {
		t.Errorf("unexpected samples %+v", samples)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(path, RunMetadata{ID: "r1"}, testSamples()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Run.ID != "r1" || len(out.Samples) != 2 {
		t.Errorf("unexpected export %+v", out)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, RunMetadata{}, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"samples": null`) {
		t.Errorf("unexpected output %s", buf.String())
	}
}
