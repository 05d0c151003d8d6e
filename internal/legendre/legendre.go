package legendre

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Normalization selects the scaling convention of the Legendre functions.
type Normalization int

const (
	// Full is the fully normalized convention used by gravity models.
	Full Normalization = iota
	// Schmidt is the Schmidt quasi-normalized convention used by
	// geomagnetic models.
	Schmidt
)

func (n Normalization) String() string {
	switch n {
	case Full:
		return "full"
	case Schmidt:
		return "schmidt"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

func (n Normalization) valid() bool {
	return n == Full || n == Schmidt
}

// ParseNormalization accepts the names used on the command line and in
// coefficient file headers.
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "fully_normalized", "fully-normalized":
		return Full, nil
	case "schmidt", "quasi_normalized", "schmidt_quasi_normalized":
		return Schmidt, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrNormalization, s)
	}
}

// seeds returns P(1,0) and P(1,1) given cos θ and the signed sin θ.
func (n Normalization) seeds(c, sf float64) (p10, p11 float64) {
	if n == Schmidt {
		return c, sf
	}
	return math.Sqrt(3) * c, math.Sqrt(3) * sf
}

// coeffs returns a(n,m) and b(n,m) of the recurrence
// P(n,m) = a·cos θ·P(n-1,m) - b·P(n-2,m), valid for m < n.
func (n Normalization) coeffs(deg, ord int) (a, b float64) {
	fn, fm := float64(deg), float64(ord)
	nm := (fn - fm) * (fn + fm)
	if n == Schmidt {
		a = (2*fn - 1) / math.Sqrt(nm)
		b = math.Sqrt((fn + fm - 1) * (fn - fm - 1) / nm)
		return a, b
	}
	a = math.Sqrt((2*fn - 1) * (2*fn + 1) / nm)
	b = math.Sqrt((2*fn + 1) * (fn + fm - 1) * (fn - fm - 1) / ((2*fn - 3) * nm))
	return a, b
}

// diag returns k(n) in P(n,n) = k·sin θ·P(n-1,n-1).
func (n Normalization) diag(deg int) float64 {
	fn := float64(deg)
	if n == Schmidt {
		return math.Sqrt((2*fn - 1) / (2 * fn))
	}
	return math.Sqrt((2*fn + 1) / (2 * fn))
}

func checkShape(P *mat.Dense) (int, error) {
	if P == nil || P.IsEmpty() {
		return 0, ErrShape
	}
	r, c := P.Dims()
	if r != c || r < 2 {
		return 0, ErrShape
	}
	return r, nil
}

// resolveDegree maps a requested degree onto a matrix of dimension dim.
// Non-positive or oversized requests use the whole matrix.
func resolveDegree(nMax, dim int) int {
	if nMax <= 0 || nMax > dim-1 {
		return dim - 1
	}
	return nMax
}

// Fill writes P(n,m)(cos theta) into P for 0 <= m <= n <= nMax.
// A non-positive nMax, or one beyond the matrix, fills the whole matrix.
// With phase set every order is multiplied by (-1)^m.
func Fill(P *mat.Dense, theta float64, nMax int, norm Normalization, phase bool) error {
	dim, err := checkShape(P)
	if err != nil {
		return err
	}
	if !norm.valid() {
		return ErrNormalization
	}
	s, c := math.Sincos(theta)
	fill(P, s, c, resolveDegree(nMax, dim), norm, phase)
	return nil
}

// FillDerivative fills P as [Fill] does and then dP with the derivative
// of every entry with respect to theta.
func FillDerivative(dP, P *mat.Dense, theta float64, nMax int, norm Normalization, phase bool) error {
	dim, err := checkShape(P)
	if err != nil {
		return err
	}
	ddim, err := checkShape(dP)
	if err != nil {
		return err
	}
	if ddim != dim {
		return ErrShape
	}
	if !norm.valid() {
		return ErrNormalization
	}
	nMax = resolveDegree(nMax, dim)
	s, c := math.Sincos(theta)
	fill(P, s, c, nMax, norm, phase)
	fillDerivative(dP, P, s, c, nMax, norm, phase)
	return nil
}

// Compute allocates and fills a (nMax+1)x(nMax+1) matrix.
func Compute(theta float64, nMax int, norm Normalization, phase bool) (*mat.Dense, error) {
	if nMax < 1 {
		return nil, ErrDegree
	}
	P := mat.NewDense(nMax+1, nMax+1, nil)
	if err := Fill(P, theta, nMax, norm, phase); err != nil {
		return nil, err
	}
	return P, nil
}

// ComputeDerivative allocates and fills both P and dP/dtheta.
func ComputeDerivative(theta float64, nMax int, norm Normalization, phase bool) (P, dP *mat.Dense, err error) {
	if nMax < 1 {
		return nil, nil, ErrDegree
	}
	P = mat.NewDense(nMax+1, nMax+1, nil)
	dP = mat.NewDense(nMax+1, nMax+1, nil)
	if err := FillDerivative(dP, P, theta, nMax, norm, phase); err != nil {
		return nil, nil, err
	}
	return P, dP, nil
}

func fill(P *mat.Dense, s, c float64, nMax int, norm Normalization, phase bool) {
	sf := s
	if phase {
		sf = -s
	}

	row0 := P.RawRowView(0)
	row0[0] = 1
	row1 := P.RawRowView(1)
	row1[0], row1[1] = norm.seeds(c, sf)

	prev2, prev1 := row0, row1
	for n := 2; n <= nMax; n++ {
		row := P.RawRowView(n)
		for m := 0; m < n; m++ {
			a, b := norm.coeffs(n, m)
			v := a * c * prev1[m]
			if m < n-1 {
				v -= b * prev2[m]
			}
			row[m] = v
		}
		row[n] = norm.diag(n) * sf * prev1[n-1]
		prev2, prev1 = prev1, row
	}
}

// fillDerivative differentiates the recurrence used by fill term by term.
// P must already hold the values for the same angle.
func fillDerivative(dP, P *mat.Dense, s, c float64, nMax int, norm Normalization, phase bool) {
	sf, cf := s, c
	if phase {
		sf, cf = -s, -c
	}

	d0 := dP.RawRowView(0)
	d0[0] = 0
	d1 := dP.RawRowView(1)
	k1, _ := norm.seeds(1, 0)
	d1[0] = -k1 * s
	d1[1] = k1 * cf

	dprev2, dprev1 := d0, d1
	for n := 2; n <= nMax; n++ {
		p1 := P.RawRowView(n - 1)
		row := dP.RawRowView(n)
		for m := 0; m < n; m++ {
			a, b := norm.coeffs(n, m)
			v := a * (c*dprev1[m] - s*p1[m])
			if m < n-1 {
				v -= b * dprev2[m]
			}
			row[m] = v
		}
		row[n] = norm.diag(n) * (sf*dprev1[n-1] + cf*p1[n-1])
		dprev2, dprev1 = dprev1, row
	}
}
