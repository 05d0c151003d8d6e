package survey

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/geoharm/internal/field"
	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/gravity"
)

func builtin(t *testing.T) *gravity.Model {
	t.Helper()
	m, err := gravity.Builtin("egm96-4")
	if err != nil {
		t.Fatalf("builtin failed: %v", err)
	}
	return m
}

func TestGridRun(t *testing.T) {
	m := builtin(t)
	g := Grid{LatStep: 30, LonStep: 60, Altitude: 400e3}

	samples, err := g.Run(context.Background(), m, field.FullModel)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(samples) != 7*6 {
		t.Fatalf("expected 42 samples, got %d", len(samples))
	}
	if samples[0].Lat != -90 || samples[0].Lon != -180 {
		t.Errorf("expected first node (-90,-180), got (%f,%f)", samples[0].Lat, samples[0].Lon)
	}
	last := samples[len(samples)-1]
	if math.Abs(last.Lat-90) > 1e-9 || math.Abs(last.Lon-120) > 1e-9 {
		t.Errorf("expected last node (90,120), got (%f,%f)", last.Lat, last.Lon)
	}

	ev := field.New(m)
	for _, s := range samples {
		if !s.A.IsFinite() || math.IsNaN(s.U) {
			t.Fatalf("non-finite sample %+v", s)
		}
		if s.R != m.R0()+400e3 {
			t.Fatalf("expected radius %f, got %f", m.R0()+400e3, s.R)
		}
		pos := geo.Spherical{Lat: geo.Deg2Rad(s.Lat), Lon: geo.Deg2Rad(s.Lon), R: s.R}.ToECEF()
		if s.A.Sub(ev.Acceleration(pos, field.FullModel)).Norm() > 1e-12 {
			t.Fatalf("sample at (%f,%f) differs from direct evaluation", s.Lat, s.Lon)
		}
	}
}

func TestGridInvalidSteps(t *testing.T) {
	m := builtin(t)
	for _, g := range []Grid{{LatStep: 0, LonStep: 10}, {LatStep: 10, LonStep: -1}, {LatStep: math.NaN(), LonStep: 10}} {
		if _, err := g.Run(context.Background(), m, field.FullModel); err == nil {
			t.Errorf("expected error for %+v", g)
		}
	}
}

func TestGridCancelled(t *testing.T) {
	m := builtin(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples, err := Grid{LatStep: 1, LonStep: 1}.Run(ctx, m, field.FullModel)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}

func TestPointMassHasNoAnomaly(t *testing.T) {
	m := builtin(t)
	samples, err := Meridian(m, 45, 0, 19, field.Degree(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range samples {
		if math.Abs(s.Anomaly) > 1e-12 {
			t.Errorf("expected zero anomaly at lat %f, got %g", s.Lat, s.Anomaly)
		}
	}
}

func TestMeridianEndpoints(t *testing.T) {
	m := builtin(t)
	samples, err := Meridian(m, 10, 0, 5, field.FullModel)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{-90, -45, 0, 45, 90}
	for i, s := range samples {
		if math.Abs(s.Lat-want[i]) > 1e-9 {
			t.Errorf("sample %d: expected lat %f, got %f", i, want[i], s.Lat)
		}
		if math.Abs(s.Lon-10) > 1e-9 {
			t.Errorf("sample %d: expected lon 10, got %f", i, s.Lon)
		}
	}
}

func TestLatitudeCircleIsPeriodic(t *testing.T) {
	m := builtin(t)
	samples, err := LatitudeCircle(m, 30, 0, 8, field.FullModel)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 8 {
		t.Fatalf("expected 8 samples, got %d", len(samples))
	}
	if samples[0].Lon != -180 || math.Abs(samples[7].Lon-135) > 1e-9 {
		t.Errorf("unexpected longitudes %f .. %f", samples[0].Lon, samples[7].Lon)
	}

	zonal, err := LatitudeCircle(m, 30, 0, 8, field.Limits{Degree: -1, Order: 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range zonal[1:] {
		if math.Abs(s.U-zonal[0].U) > 1e-6 {
			t.Errorf("zonal potential should not depend on longitude: %f vs %f", s.U, zonal[0].U)
		}
	}
}

func TestProfilesRejectTooFewPoints(t *testing.T) {
	m := builtin(t)
	if _, err := Meridian(m, 0, 0, 1, field.FullModel); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
	if _, err := LatitudeCircle(m, 0, 0, 0, field.FullModel); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	samples := []Sample{{Anomaly: 3, U: 1}, {Anomaly: -4, U: 2}}

	got := Summarize(samples, DefaultMetrics()...)
	if got["max_abs_anomaly"] != 4 {
		t.Errorf("expected max 4, got %f", got["max_abs_anomaly"])
	}
	if got["mean_anomaly"] != -0.5 {
		t.Errorf("expected mean -0.5, got %f", got["mean_anomaly"])
	}
	if math.Abs(got["rms_anomaly"]-math.Sqrt(12.5)) > 1e-15 {
		t.Errorf("expected rms %f, got %f", math.Sqrt(12.5), got["rms_anomaly"])
	}

	mean := NewMean(PotentialQuantity)
	if mean.Value() != 0 {
		t.Errorf("expected 0 before observing, got %f", mean.Value())
	}
	Summarize(samples, mean)
	if mean.Value() != 1.5 {
		t.Errorf("expected 1.5, got %f", mean.Value())
	}
	mean.Reset()
	if mean.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", mean.Value())
	}
}

func TestExtractors(t *testing.T) {
	samples := []Sample{{U: 1, Anomaly: 2}, {U: 3, Anomaly: 4}}
	if u := Potentials(samples); u[0] != 1 || u[1] != 3 {
		t.Errorf("unexpected potentials %v", u)
	}
	if a := Anomalies(samples); a[0] != 2 || a[1] != 4 {
		t.Errorf("unexpected anomalies %v", a)
	}
}
