// Package gravity loads spherical-harmonic gravity field models.
//
// A [Model] is immutable once built and may be shared between goroutines
// without synchronization.
package gravity

import (
	"errors"
	"fmt"

	"github.com/san-kum/geoharm/internal/legendre"
	"gonum.org/v1/gonum/mat"
)

// MaxDegree is the largest max_degree accepted when building a model, that
// of EGM2008. The Legendre recurrences are not renormalized, so higher
// degrees are outside double-precision range near the poles.
const MaxDegree = 2190

// Meta describes a model apart from its coefficients.
type Meta struct {
	Name        string
	ProductType string
	Mu          float64 // m³/s²
	R0          float64 // m
	NMax        int
	Norm        legendre.Normalization
	TideSystem  string
	Errors      string
}

// Model is a gravity field coefficient set. C and S are dense
// (NMax+1)x(NMax+1) matrices; entries with m > n are zero.
type Model struct {
	meta Meta
	c, s *mat.Dense
}

// NewModel builds a model from per-degree coefficient rows. Row n of c and s
// must hold at least n+1 values; anything past index n must be zero. The
// rows are copied.
func NewModel(meta Meta, c, s [][]float64) (*Model, error) {
	if err := validateMeta(meta); err != nil {
		return nil, err
	}
	dim := meta.NMax + 1
	if len(c) != dim || len(s) != dim {
		return nil, fmt.Errorf("gravity: expected %d coefficient rows, got %d C and %d S", dim, len(c), len(s))
	}

	m := newModel(meta)
	for n := 0; n < dim; n++ {
		if err := copyRow(m.c, n, c[n]); err != nil {
			return nil, fmt.Errorf("gravity: C row %d: %w", n, err)
		}
		if err := copyRow(m.s, n, s[n]); err != nil {
			return nil, fmt.Errorf("gravity: S row %d: %w", n, err)
		}
	}
	return m, nil
}

func newModel(meta Meta) *Model {
	dim := meta.NMax + 1
	return &Model{
		meta: meta,
		c:    mat.NewDense(dim, dim, nil),
		s:    mat.NewDense(dim, dim, nil),
	}
}

func validateMeta(meta Meta) error {
	switch {
	case meta.NMax < 0 || meta.NMax > MaxDegree:
		return fmt.Errorf("%w: max degree %d outside [0, %d]", ErrBadValue, meta.NMax, MaxDegree)
	case !(meta.Mu > 0):
		return fmt.Errorf("%w: gravitational parameter %g", ErrBadValue, meta.Mu)
	case !(meta.R0 > 0):
		return fmt.Errorf("%w: reference radius %g", ErrBadValue, meta.R0)
	case meta.Norm != legendre.Full && meta.Norm != legendre.Schmidt:
		return ErrNormalization
	}
	return nil
}

func copyRow(dst *mat.Dense, n int, row []float64) error {
	if len(row) < n+1 {
		return fmt.Errorf("need %d values, got %d", n+1, len(row))
	}
	_, cols := dst.Dims()
	if len(row) > cols {
		return fmt.Errorf("row longer than %d", cols)
	}
	for m := n + 1; m < len(row); m++ {
		if row[m] != 0 {
			return errors.New("nonzero entry with m > n")
		}
	}
	copy(dst.RawRowView(n), row[:n+1])
	return nil
}

// Meta returns a copy of the model description.
func (m *Model) Meta() Meta { return m.meta }

// Name returns the model name from the file header.
func (m *Model) Name() string { return m.meta.Name }

// Mu returns the gravitational parameter [m³/s²].
func (m *Model) Mu() float64 { return m.meta.Mu }

// R0 returns the reference radius [m].
func (m *Model) R0() float64 { return m.meta.R0 }

// NMax returns the maximum degree held by the model.
func (m *Model) NMax() int { return m.meta.NMax }

func (m *Model) Normalization() legendre.Normalization { return m.meta.Norm }

// C returns the cosine coefficient of degree n and order m.
func (m *Model) C(n, ord int) float64 { return m.c.At(n, ord) }

// S returns the sine coefficient of degree n and order m.
func (m *Model) S(n, ord int) float64 { return m.s.At(n, ord) }

// Row returns views of C(n, 0..n) and S(n, 0..n). The slices alias the
// model and must not be modified.
func (m *Model) Row(n int) (c, s []float64) {
	return m.c.RawRowView(n)[: n+1 : n+1], m.s.RawRowView(n)[: n+1 : n+1]
}

func (m *Model) String() string {
	return fmt.Sprintf("%s (n_max=%d, mu=%.10e, r0=%.4f, %s)", m.meta.Name, m.meta.NMax, m.meta.Mu, m.meta.R0, m.meta.Norm)
}
