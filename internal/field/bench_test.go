package field

import (
	"testing"

	"github.com/san-kum/geoharm/internal/geo"
)

func BenchmarkPotential(b *testing.B) {
	m := loadEGM96(b)
	ev := New(m)
	pos := geo.Vec3{X: 4000e3, Y: 3000e3, Z: 4500e3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev.PotentialAt(pos, -1)
	}
}

func BenchmarkAcceleration(b *testing.B) {
	m := loadEGM96(b)
	ev := New(m)
	pos := geo.Vec3{X: 4000e3, Y: 3000e3, Z: 4500e3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev.Acceleration(pos, FullModel)
	}
}

func BenchmarkAccelerationPooled(b *testing.B) {
	m := loadEGM96(b)
	pos := geo.Vec3{X: 4000e3, Y: 3000e3, Z: 4500e3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Acceleration(m, pos, FullModel)
	}
}
