package gravity

import (
	"errors"
	"testing"

	"github.com/san-kum/geoharm/internal/legendre"
)

func testMeta(nMax int) Meta {
	return Meta{Name: "unit", Mu: 3.986004415e14, R0: 6378136.3, NMax: nMax, Norm: legendre.Full}
}

func TestNewModel(t *testing.T) {
	c := [][]float64{{1}, {0, 0}, {-4.8e-4, 0, 2.4e-6}}
	s := [][]float64{{0}, {0, 0}, {0, 0, -1.4e-6}}

	m, err := NewModel(testMeta(2), c, s)
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}

	c[2][0] = 99
	if m.C(2, 0) != -4.8e-4 {
		t.Error("model should copy its input rows")
	}

	rc, rs := m.Row(2)
	if len(rc) != 3 || len(rs) != 3 {
		t.Fatalf("expected row views of length 3, got %d and %d", len(rc), len(rs))
	}
	if rc[2] != 2.4e-6 || rs[2] != -1.4e-6 {
		t.Errorf("unexpected row views %v %v", rc, rs)
	}
}

func TestNewModelSquareRows(t *testing.T) {
	c := [][]float64{{1, 0, 0}, {0, 0, 0}, {-4.8e-4, 0, 2.4e-6}}
	s := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	if _, err := NewModel(testMeta(2), c, s); err != nil {
		t.Fatalf("zero-padded rows should be accepted: %v", err)
	}

	c[0][2] = 1
	if _, err := NewModel(testMeta(2), c, s); err == nil {
		t.Error("expected error for nonzero padding")
	}
}

func TestNewModelValidation(t *testing.T) {
	rows := [][]float64{{1}, {0, 0}}

	tests := []struct {
		name string
		meta Meta
		c, s [][]float64
		want error
	}{
		{"negative degree", Meta{Mu: 1, R0: 1, NMax: -1}, nil, nil, ErrBadValue},
		{"degree too large", Meta{Mu: 1, R0: 1, NMax: MaxDegree + 1}, nil, nil, ErrBadValue},
		{"zero mu", Meta{R0: 1, NMax: 1}, rows, rows, ErrBadValue},
		{"zero radius", Meta{Mu: 1, NMax: 1}, rows, rows, ErrBadValue},
		{"bad norm", Meta{Mu: 1, R0: 1, NMax: 1, Norm: legendre.Normalization(5)}, rows, rows, ErrNormalization},
	}

	for _, tt := range tests {
		if _, err := NewModel(tt.meta, tt.c, tt.s); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	if _, err := NewModel(testMeta(1), rows[:1], rows); err == nil {
		t.Error("expected error for missing rows")
	}
	if _, err := NewModel(testMeta(1), [][]float64{{1}, {0}}, rows); err == nil {
		t.Error("expected error for short row")
	}
}

func TestZonalSchmidt(t *testing.T) {
	meta := testMeta(2)
	meta.Norm = legendre.Schmidt
	m, err := NewModel(meta, [][]float64{{1}, {0, 0}, {-1e-3, 0, 0}}, [][]float64{{0}, {0, 0}, {0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if m.J(2) != 1e-3 {
		t.Errorf("expected J2 1e-3 for schmidt coefficients, got %g", m.J(2))
	}
}
