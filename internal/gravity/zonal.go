package gravity

import (
	"math"

	"github.com/san-kum/geoharm/internal/legendre"
)

// ZonalTerms is the subset of a model used by analytic propagators.
type ZonalTerms struct {
	Mu, R0     float64
	J2, J3, J4 float64
}

// J returns the unnormalized zonal coefficient J(n) = -C(n,0)·N(n,0),
// or zero when n is outside the model.
func (m *Model) J(n int) float64 {
	if n < 0 || n > m.meta.NMax {
		return 0
	}
	scale := 1.0
	if m.meta.Norm == legendre.Full {
		scale = math.Sqrt(float64(2*n + 1))
	}
	return -m.c.At(n, 0) * scale
}

// Zonals extracts Mu, R0, J2, J3 and J4.
func (m *Model) Zonals() ZonalTerms {
	return ZonalTerms{
		Mu: m.meta.Mu,
		R0: m.meta.R0,
		J2: m.J(2),
		J3: m.J(3),
		J4: m.J(4),
	}
}
