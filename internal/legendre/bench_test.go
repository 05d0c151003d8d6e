package legendre

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func benchmarkFill(b *testing.B, nMax int, norm Normalization) {
	P := mat.NewDense(nMax+1, nMax+1, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Fill(P, 0.7, nMax, norm, false)
	}
}

func BenchmarkFillFull36(b *testing.B)     { benchmarkFill(b, 36, Full) }
func BenchmarkFillFull360(b *testing.B)    { benchmarkFill(b, 360, Full) }
func BenchmarkFillSchmidt13(b *testing.B)  { benchmarkFill(b, 13, Schmidt) }
func BenchmarkFillSchmidt360(b *testing.B) { benchmarkFill(b, 360, Schmidt) }

func BenchmarkFillDerivative360(b *testing.B) {
	const nMax = 360
	P := mat.NewDense(nMax+1, nMax+1, nil)
	dP := mat.NewDense(nMax+1, nMax+1, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FillDerivative(dP, P, 0.7, nMax, Full, false)
	}
}
