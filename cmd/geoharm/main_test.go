package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/geoharm/internal/survey"
)

func TestParsePoint(t *testing.T) {
	lat, lon, alt, err := parsePoint([]string{"45.5", "-120"}, 400e3)
	if err != nil {
		t.Fatal(err)
	}
	if lat != 45.5 || lon != -120 || alt != 400e3 {
		t.Errorf("unexpected point %f %f %f", lat, lon, alt)
	}

	_, _, alt, err = parsePoint([]string{"0", "0", "1500"}, 400e3)
	if err != nil || alt != 1500 {
		t.Errorf("expected explicit altitude 1500, got %f (%v)", alt, err)
	}

	for _, args := range [][]string{{"north", "0"}, {"91", "0"}, {"0", "0", "high"}} {
		if _, _, _, err := parsePoint(args, 0); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestBenchDegrees(t *testing.T) {
	tests := map[int][]int{
		0:   {},
		1:   {1},
		4:   {2, 4},
		360: {2, 4, 8, 16, 32, 64, 128, 256, 360},
	}
	for nMax, want := range tests {
		if got := benchDegrees(nMax); !reflect.DeepEqual(got, want) {
			t.Errorf("nMax %d: expected %v, got %v", nMax, want, got)
		}
	}
}

func TestRenderMap(t *testing.T) {
	samples := make([]survey.Sample, 3*4)
	for i := range samples {
		samples[i].Anomaly = float64(i / 4)
	}
	out := renderMap(samples, 90)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 18 {
		t.Fatalf("expected 18 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "@") || !strings.HasPrefix(lines[17], " ") {
		t.Errorf("expected north row high and south row low:\n%s", out)
	}

	if renderMap(samples[:2], 90) != "" {
		t.Error("expected empty map for a partial row")
	}
}

func TestLimitText(t *testing.T) {
	if limitText(-1, "full") != "full" || limitText(4, "full") != "4" {
		t.Error("unexpected limit text")
	}
}
