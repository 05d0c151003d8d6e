package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/geoharm/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != DefaultModel {
		t.Errorf("expected model %s, got %s", DefaultModel, cfg.Model)
	}
	if cfg.Limits() != field.FullModel {
		t.Errorf("expected full model limits, got %+v", cfg.Limits())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadModelBuiltin(t *testing.T) {
	m, err := DefaultConfig().LoadModel()
	if err != nil {
		t.Fatalf("load model failed: %v", err)
	}
	if m.NMax() != 4 {
		t.Errorf("expected n_max 4, got %d", m.NMax())
	}

	cfg := DefaultConfig()
	cfg.ModelFile = filepath.Join(t.TempDir(), "missing.gfc")
	if _, err := cfg.LoadModel(); err == nil {
		t.Error("expected error for missing model file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Degree = 3
	cfg.Order = 0
	cfg.Altitude = 400e3
	cfg.LatStep = 5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("degree: 2\naltitude: 500000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Degree != 2 || cfg.Altitude != 500000 {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.Model != DefaultModel || cfg.LatStep != DefaultLatStep {
		t.Errorf("expected defaults to survive, got %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad_yaml.yaml": "degree: [1, 2\n",
		"bad_step.yaml": "lat_step: 0\n",
		"no_model.yaml": "model: \"\"\n",
		"samples.yaml":  "samples: 1\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPresets(t *testing.T) {
	cfg := GetPreset("j2")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Degree != 2 || cfg.Order != 0 {
		t.Errorf("expected degree 2 order 0, got %d %d", cfg.Degree, cfg.Order)
	}

	cfg.Degree = 99
	if Presets["j2"].Degree != 2 {
		t.Error("GetPreset should return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	base := DefaultConfig()
	base.ModelFile = "keep.gfc"
	if !Apply(base, "coarse") {
		t.Fatal("expected coarse preset to apply")
	}
	if base.LatStep != 30 || base.ModelFile != "keep.gfc" {
		t.Errorf("unexpected config after apply: %+v", base)
	}
	if Apply(base, "nonexistent") {
		t.Error("expected unknown preset to be rejected")
	}

	names := ListPresets()
	if len(names) != len(Presets) || names[0] != "coarse" {
		t.Errorf("unexpected preset list %v", names)
	}
}
