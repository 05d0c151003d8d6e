package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/survey"
)

func testSamples() []survey.Sample {
	return []survey.Sample{
		{Lat: -90, Lon: -180, R: 6378136.3, U: 62636860.735, A: geo.Vec3{X: 1e-9, Y: -2.5e-10, Z: 9.832}, Anomaly: 0.0127},
		{Lat: 0.1, Lon: 1.0 / 3, R: 6778136.3, U: 1.0 / 7, A: geo.Vec3{X: -8.68, Y: 0.1, Z: -1e-300}, Anomaly: -3.3e-5},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "runs"))
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	samples := testSamples()
	id, err := s.Save(RunMetadata{Kind: "meridian", Model: "EGM96 (4x4)", Degree: 4, Order: -1, Metrics: map[string]float64{"rms_anomaly": 0.01}}, samples)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(id, "meridian_EGM96--4x4-_") {
		t.Errorf("unexpected id %s", id)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != id || meta.Points != 2 || meta.Degree != 4 || meta.Metrics["rms_anomaly"] != 0.01 {
		t.Errorf("unexpected metadata %+v", meta)
	}

	got, err := s.LoadSamples(id)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(got))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, samples[i], got[i])
		}
	}
}

func TestListAndLatest(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := s.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v %v", runs, err)
	}
	if _, err := s.Latest(); err == nil {
		t.Error("expected error with no runs")
	}

	first, err := s.Save(RunMetadata{Model: "a"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(RunMetadata{Model: "b"}, testSamples())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, "stray.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(s.baseDir, "broken"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first || runs[1].ID != second {
		t.Errorf("unexpected runs %+v", runs)
	}
	if runs[0].Kind != "grid" {
		t.Errorf("expected default kind grid, got %s", runs[0].Kind)
	}

	latest, err := s.Latest()
	if err != nil || latest.ID != second {
		t.Errorf("expected latest %s, got %+v %v", second, latest, err)
	}

	empty, err := s.LoadSamples(first)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no samples, got %v %v", empty, err)
	}
}

func TestLoadSamplesRejectsGarbage(t *testing.T) {
	s := New(t.TempDir())
	id, err := s.Save(RunMetadata{Model: "x"}, testSamples())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(s.baseDir, id, "samples.csv")
	body := "lat,lon,r,u,ax,ay,az,anomaly\n1,2,3,4,5,6,seven,8\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadSamples(id); err == nil {
		t.Error("expected parse error")
	}
	if _, err := s.LoadSamples("missing"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	s := New(t.TempDir())
	id, err := s.Save(RunMetadata{Model: "egm96-4"}, testSamples())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.ExportJSON(&buf, id); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.Metadata.ID != id || len(data.Samples) != 2 {
		t.Errorf("unexpected export %+v", data)
	}
	if data.Samples[1] != testSamples()[1] {
		t.Errorf("expected %+v, got %+v", testSamples()[1], data.Samples[1])
	}
}
