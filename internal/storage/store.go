// Package storage persists survey runs as a directory per run holding
// metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/survey"
)

var sampleHeader = []string{"lat", "lon", "r", "u", "ax", "ay", "az", "anomaly"}

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
	Kind      string             `json:"kind"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Degree    int                `json:"degree"`
	Order     int                `json:"order"`
	Altitude  float64            `json:"altitude"`
	LatStep   float64            `json:"lat_step,omitempty"`
	LonStep   float64            `json:"lon_step,omitempty"`
	Points    int                `json:"points"`
	Metrics   map[string]float64 `json:"metrics"`
}

func runID(meta RunMetadata, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, meta.Model)
	if name == "" {
		name = "run"
	}
	return fmt.Sprintf("%s_%s_%d", meta.Kind, name, now.UnixNano())
}

// Save writes a new run and returns its id. ID, Timestamp and Points are
// filled in from the call.
func (s *Store) Save(meta RunMetadata, samples []survey.Sample) (string, error) {
	if meta.Kind == "" {
		meta.Kind = "grid"
	}
	now := time.Now()
	meta.ID = runID(meta, now)
	meta.Timestamp = now
	meta.Points = len(samples)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes samples with a header row. Values are written with the
// shortest exact representation so they read back bit-identical.
func WriteCSV(w io.Writer, samples []survey.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []float64{s.Lat, s.Lon, s.R, s.U, s.A.X, s.A.Y, s.A.Z, s.Anomaly}
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable run, oldest first. A missing base directory
// is an empty list.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(id string) ([]survey.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []survey.Sample{}, nil
	}

	samples := make([]survey.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		var v [8]float64
		for j := range v {
			if v[j], err = strconv.ParseFloat(rec[j], 64); err != nil {
				return nil, fmt.Errorf("storage: %s row %d column %s: %w", id, i+2, sampleHeader[j], err)
			}
		}
		samples = append(samples, survey.Sample{
			Lat: v[0], Lon: v[1], R: v[2], U: v[3],
			A:       geo.Vec3{X: v[4], Y: v[5], Z: v[6]},
			Anomaly: v[7],
		})
	}
	return samples, nil
}

type ExportData struct {
	Metadata RunMetadata     `json:"metadata"`
	Samples  []survey.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and samples as one indented document.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Metadata: *meta, Samples: samples})
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, errors.New("storage: no runs")
	}
	return &runs[len(runs)-1], nil
}
