package field

import (
	"sync"

	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/gravity"
	"github.com/san-kum/geoharm/internal/legendre"
)

// scratch pools keyed by matrix dimension
var scratch sync.Map

func poolFor(dim int) *legendre.Pool {
	if p, ok := scratch.Load(dim); ok {
		return p.(*legendre.Pool)
	}
	p, _ := scratch.LoadOrStore(dim, legendre.NewPool(dim-1))
	return p.(*legendre.Pool)
}

func acquire(model *gravity.Model) *Evaluator {
	pool := poolFor(scratchDim(model))
	return &Evaluator{
		model: model,
		P:     pool.Get(),
		dP:    pool.Get(),
		pool:  pool,
	}
}

// Potential returns U [J/kg] at geocentric latitude, longitude [rad] and
// radius [m].
func Potential(model *gravity.Model, lat, lon, r float64, degree int) float64 {
	e := acquire(model)
	defer e.release()
	return e.Potential(lat, lon, r, degree)
}

// PotentialAt returns U [J/kg] at a body-fixed Cartesian position [m].
func PotentialAt(model *gravity.Model, pos geo.Vec3, degree int) float64 {
	e := acquire(model)
	defer e.release()
	return e.PotentialAt(pos, degree)
}

// Gradient returns the spherical partials of U at a body-fixed position.
func Gradient(model *gravity.Model, pos geo.Vec3, lim Limits) Partials {
	e := acquire(model)
	defer e.release()
	return e.Gradient(pos, lim)
}

// Acceleration returns the gravitational acceleration [m/s²] at a
// body-fixed position, without the centrifugal term.
func Acceleration(model *gravity.Model, pos geo.Vec3, lim Limits) geo.Vec3 {
	e := acquire(model)
	defer e.release()
	return e.Acceleration(pos, lim)
}
