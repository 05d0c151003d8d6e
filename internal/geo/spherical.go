package geo

import "math"

// Spherical holds geocentric coordinates: latitude and longitude [rad],
// radius [m].
type Spherical struct {
	Lat, Lon, R float64
}

// ToSpherical converts an ECEF position to geocentric spherical
// coordinates. The origin maps to the zero value.
func ToSpherical(v Vec3) Spherical {
	rxy := math.Hypot(v.X, v.Y)
	r := math.Hypot(rxy, v.Z)
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Lat: math.Atan2(v.Z, rxy),
		Lon: math.Atan2(v.Y, v.X),
		R:   r,
	}
}

// ToECEF converts geocentric spherical coordinates back to Cartesian.
func (s Spherical) ToECEF() Vec3 {
	sLat, cLat := math.Sincos(s.Lat)
	sLon, cLon := math.Sincos(s.Lon)
	return Vec3{
		X: s.R * cLat * cLon,
		Y: s.R * cLat * sLon,
		Z: s.R * sLat,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(a float64) float64 {
	return a * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(a float64) float64 {
	return a * 180 / math.Pi
}
