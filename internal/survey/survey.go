// Package survey samples a gravity model over grids and profiles and
// summarizes the samples with running metrics.
package survey

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/geoharm/internal/field"
	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/gravity"
)

// blockSize is the number of points evaluated between cancellation checks.
const blockSize = 1024

var ErrTooFewPoints = errors.New("survey: at least two points are required")

// Sample is one evaluated point. Lat and Lon are geocentric degrees.
type Sample struct {
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	R       float64  `json:"r"`
	U       float64  `json:"u"`
	A       geo.Vec3 `json:"a"`
	Anomaly float64  `json:"anomaly"` // |a| - mu/r² [m/s²]
}

// Grid covers the sphere at a fixed altitude above the reference radius.
// Latitudes run from -90 to 90 inclusive, longitudes from -180 up to but
// not including 180. Steps are in degrees.
type Grid struct {
	LatStep  float64
	LonStep  float64
	Altitude float64
}

func (g Grid) validate() error {
	if !(g.LatStep > 0) || !(g.LonStep > 0) {
		return fmt.Errorf("survey: grid steps must be positive, got %g x %g", g.LatStep, g.LonStep)
	}
	return nil
}

// Points lists the grid nodes, latitude-major.
func (g Grid) Points(model *gravity.Model) ([]geo.Spherical, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	r := model.R0() + g.Altitude
	nLat := int(math.Floor(180/g.LatStep+1e-9)) + 1
	nLon := int(math.Ceil(360/g.LonStep - 1e-9))

	pts := make([]geo.Spherical, 0, nLat*nLon)
	for i := 0; i < nLat; i++ {
		lat := -90 + float64(i)*g.LatStep
		for j := 0; j < nLon; j++ {
			lon := -180 + float64(j)*g.LonStep
			pts = append(pts, geo.Spherical{Lat: geo.Deg2Rad(lat), Lon: geo.Deg2Rad(lon), R: r})
		}
	}
	return pts, nil
}

// Run evaluates every grid node. Cancellation is checked between blocks;
// on cancellation the samples computed so far are returned with ctx.Err().
func (g Grid) Run(ctx context.Context, model *gravity.Model, lim field.Limits) ([]Sample, error) {
	pts, err := g.Points(model)
	if err != nil {
		return nil, err
	}
	return evaluate(ctx, model, pts, lim)
}

// Meridian samples n points from the south to the north pole along lon
// [deg] at the given altitude.
func Meridian(model *gravity.Model, lon, altitude float64, n int, lim field.Limits) ([]Sample, error) {
	if n < 2 {
		return nil, ErrTooFewPoints
	}
	r := model.R0() + altitude
	pts := make([]geo.Spherical, n)
	for i := range pts {
		lat := -90 + 180*float64(i)/float64(n-1)
		pts[i] = geo.Spherical{Lat: geo.Deg2Rad(lat), Lon: geo.Deg2Rad(lon), R: r}
	}
	return evaluate(context.Background(), model, pts, lim)
}

// LatitudeCircle samples n equally spaced longitudes starting at -180 along
// lat [deg]. The end point is excluded so the profile is periodic.
func LatitudeCircle(model *gravity.Model, lat, altitude float64, n int, lim field.Limits) ([]Sample, error) {
	if n < 2 {
		return nil, ErrTooFewPoints
	}
	r := model.R0() + altitude
	pts := make([]geo.Spherical, n)
	for i := range pts {
		lon := -180 + 360*float64(i)/float64(n)
		pts[i] = geo.Spherical{Lat: geo.Deg2Rad(lat), Lon: geo.Deg2Rad(lon), R: r}
	}
	return evaluate(context.Background(), model, pts, lim)
}

// At evaluates a single point given in degrees.
func At(ev *field.Evaluator, lat, lon, r float64, lim field.Limits) Sample {
	return sample(ev, geo.Spherical{Lat: geo.Deg2Rad(lat), Lon: geo.Deg2Rad(lon), R: r}, lim)
}

func evaluate(ctx context.Context, model *gravity.Model, pts []geo.Spherical, lim field.Limits) ([]Sample, error) {
	out := make([]Sample, len(pts))
	for start := 0; start < len(pts); start += blockSize {
		select {
		case <-ctx.Done():
			return out[:start], ctx.Err()
		default:
		}

		end := start + blockSize
		if end > len(pts) {
			end = len(pts)
		}
		field.ParallelFor(end-start, 64, func(s, e int) {
			ev := field.New(model)
			for i := start + s; i < start+e; i++ {
				out[i] = sample(ev, pts[i], lim)
			}
		})
	}
	return out, nil
}

func sample(ev *field.Evaluator, p geo.Spherical, lim field.Limits) Sample {
	pos := p.ToECEF()
	a := ev.Acceleration(pos, lim)
	mu := ev.Model().Mu()
	return Sample{
		Lat:     geo.Rad2Deg(p.Lat),
		Lon:     geo.Rad2Deg(p.Lon),
		R:       p.R,
		U:       ev.PotentialLimits(pos, lim),
		A:       a,
		Anomaly: a.Norm() - mu/(p.R*p.R),
	}
}

// Potentials extracts U from each sample.
func Potentials(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.U
	}
	return out
}

// Anomalies extracts the radial anomaly from each sample.
func Anomalies(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Anomaly
	}
	return out
}
