package field

import (
	"fmt"
	"math"

	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/gravity"
	"github.com/san-kum/geoharm/internal/legendre"
	"gonum.org/v1/gonum/mat"
)

// AllOrders as an order limit keeps every order up to the degree limit.
const AllOrders = -1

// poleTolerance is the |cos φ| below which a point is treated as lying on
// the polar axis and the east component is taken as zero. Exactly on the
// axis this drops the finite limit of the order-1 terms, a relative error
// on the order of the model's m=1 coefficients.
const poleTolerance = 1e-12

// Limits truncates an evaluation. Degree <= 0 or above the model maximum
// selects the model maximum. Order < 0 or above the resolved degree selects
// the resolved degree; Order == 0 keeps only the zonal terms.
type Limits struct {
	Degree int
	Order  int
}

// FullModel evaluates every available degree and order.
var FullModel = Limits{Degree: -1, Order: AllOrders}

// Degree truncates at degree n with all orders.
func Degree(n int) Limits {
	return Limits{Degree: n, Order: AllOrders}
}

func (l Limits) resolve(nMax int) (deg, ord int) {
	deg = l.Degree
	if deg <= 0 || deg > nMax {
		deg = nMax
	}
	ord = l.Order
	if ord < 0 || ord > deg {
		ord = deg
	}
	return deg, ord
}

// Partials holds the spherical partial derivatives of the potential.
type Partials struct {
	DR   float64 // dU/dr [m/s²]
	DLat float64 // dU/dφ [m²/s²/rad], geocentric latitude
	DLon float64 // dU/dλ [m²/s²/rad]
}

// Evaluator computes field quantities for one model using its own
// Legendre scratch matrices.
type Evaluator struct {
	model *gravity.Model
	P, dP *mat.Dense
	pool  *legendre.Pool
}

// New allocates an evaluator sized for the full model.
func New(model *gravity.Model) *Evaluator {
	dim := scratchDim(model)
	return &Evaluator{
		model: model,
		P:     mat.NewDense(dim, dim, nil),
		dP:    mat.NewDense(dim, dim, nil),
	}
}

func scratchDim(model *gravity.Model) int {
	if model.NMax() < 1 {
		return 2
	}
	return model.NMax() + 1
}

func (e *Evaluator) Model() *gravity.Model { return e.model }

// Potential returns U [J/kg] at geocentric latitude, longitude [rad] and
// radius [m], truncated at degree.
func (e *Evaluator) Potential(lat, lon, r float64, degree int) float64 {
	return e.potential(geo.Spherical{Lat: lat, Lon: lon, R: r}, Degree(degree))
}

// PotentialAt returns U [J/kg] at a body-fixed Cartesian position.
func (e *Evaluator) PotentialAt(pos geo.Vec3, degree int) float64 {
	return e.potential(geo.ToSpherical(pos), Degree(degree))
}

// PotentialLimits is PotentialAt with an order limit as well.
func (e *Evaluator) PotentialLimits(pos geo.Vec3, lim Limits) float64 {
	return e.potential(geo.ToSpherical(pos), lim)
}

func (e *Evaluator) potential(p geo.Spherical, lim Limits) float64 {
	m := e.model
	deg, ord := lim.resolve(m.NMax())

	u := 1.0
	if deg >= 2 {
		must(legendre.Fill(e.P, math.Pi/2-p.Lat, deg, m.Normalization(), false))

		sinLon, cosLon := math.Sincos(p.Lon)
		ratio := m.R0() / p.R
		rn := ratio
		for n := 2; n <= deg; n++ {
			rn *= ratio
			c, s := m.Row(n)
			pn := e.P.RawRowView(n)

			// sin(mλ), cos(mλ) by recurrence from m = -1, 0
			sPrev, cPrev := -sinLon, cosLon
			sCur, cCur := 0.0, 1.0
			sum := 0.0
			for k := 0; k <= n && k <= ord; k++ {
				sum += pn[k] * (c[k]*cCur + s[k]*sCur)
				sPrev, sCur = sCur, 2*cosLon*sCur-sPrev
				cPrev, cCur = cCur, 2*cosLon*cCur-cPrev
			}
			u += rn * sum
		}
	}
	return m.Mu() / p.R * u
}

// Gradient returns dU/dr, dU/dφ and dU/dλ at a body-fixed position.
func (e *Evaluator) Gradient(pos geo.Vec3, lim Limits) Partials {
	return e.gradient(geo.ToSpherical(pos), lim)
}

func (e *Evaluator) gradient(p geo.Spherical, lim Limits) Partials {
	m := e.model
	deg, ord := lim.resolve(m.NMax())

	dUr := 1.0
	dUcolat := 0.0
	dUlon := 0.0
	if deg >= 2 {
		must(legendre.FillDerivative(e.dP, e.P, math.Pi/2-p.Lat, deg, m.Normalization(), false))

		sinLon, cosLon := math.Sincos(p.Lon)
		ratio := m.R0() / p.R
		rn := ratio
		for n := 2; n <= deg; n++ {
			rn *= ratio
			c, s := m.Row(n)
			pn := e.P.RawRowView(n)
			dpn := e.dP.RawRowView(n)

			sPrev, cPrev := -sinLon, cosLon
			sCur, cCur := 0.0, 1.0
			var sumR, sumColat, sumLon float64
			for k := 0; k <= n && k <= ord; k++ {
				cs := c[k]*cCur + s[k]*sCur
				sumR += pn[k] * cs
				sumColat += dpn[k] * cs
				sumLon += float64(k) * pn[k] * (s[k]*cCur - c[k]*sCur)
				sPrev, sCur = sCur, 2*cosLon*sCur-sPrev
				cPrev, cCur = cCur, 2*cosLon*cCur-cPrev
			}
			dUr += float64(n+1) * rn * sumR
			dUcolat += rn * sumColat
			dUlon += rn * sumLon
		}
	}

	k := m.Mu() / p.R
	return Partials{
		DR:   -k / p.R * dUr,
		DLat: -k * dUcolat,
		DLon: k * dUlon,
	}
}

// Acceleration returns the gravitational acceleration [m/s²] at a
// body-fixed position, in the same frame. No centrifugal term is included.
func (e *Evaluator) Acceleration(pos geo.Vec3, lim Limits) geo.Vec3 {
	p := geo.ToSpherical(pos)
	g := e.gradient(p, lim)

	// up, east, north
	local := geo.Vec3{X: g.DR, Z: g.DLat / p.R}
	if cosLat := math.Cos(p.Lat); math.Abs(cosLat) > poleTolerance {
		local.Y = g.DLon / (p.R * cosLat)
	}

	dcm, err := geo.AngleToDCM(0, p.Lat, -p.Lon, "XYZ")
	must(err)
	return geo.MulVec(dcm, local)
}

func (e *Evaluator) release() {
	if e.pool == nil {
		return
	}
	e.pool.Put(e.P)
	e.pool.Put(e.dP)
	e.P, e.dP = nil, nil
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("field: %v", err))
	}
}
