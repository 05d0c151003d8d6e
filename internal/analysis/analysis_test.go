package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestFFTLength(t *testing.T) {
	g := NewWithT(t)

	_, err := FFT(make([]float64, 6))
	g.Expect(errors.Is(err, ErrLength)).To(BeTrue())

	x, err := FFT(nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(x).To(BeEmpty())

	x, err = FFT([]float64{2.5})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(x).To(Equal([]complex128{2.5}))
}

func TestFFTImpulse(t *testing.T) {
	g := NewWithT(t)

	data := make([]float64, 8)
	data[0] = 1
	x, err := FFT(data)
	g.Expect(err).NotTo(HaveOccurred())
	for _, v := range x {
		g.Expect(real(v)).To(BeNumerically("~", 1, 1e-15))
		g.Expect(imag(v)).To(BeNumerically("~", 0, 1e-15))
	}
}

func TestOrderSpectrum(t *testing.T) {
	g := NewWithT(t)

	const n = 32
	values := make([]float64, n)
	for i := range values {
		lon := -math.Pi + 2*math.Pi*float64(i)/n
		values[i] = 5 + 2*math.Cos(2*lon) + 0.5*math.Sin(3*lon+0.3)
	}

	amp, err := OrderSpectrum(values)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(amp).To(HaveLen(n / 2))
	g.Expect(amp[0]).To(BeNumerically("~", 5, 1e-12))
	g.Expect(amp[2]).To(BeNumerically("~", 2, 1e-12))
	g.Expect(amp[3]).To(BeNumerically("~", 0.5, 1e-12))
	for m, a := range amp {
		if m != 0 && m != 2 && m != 3 {
			g.Expect(a).To(BeNumerically("<", 1e-12), "order %d", m)
		}
	}

	_, err = OrderSpectrum([]float64{1})
	g.Expect(err).To(MatchError(ErrLength))
	_, err = OrderSpectrum(make([]float64, 12))
	g.Expect(err).To(MatchError(ErrLength))
}

func TestPadPow2(t *testing.T) {
	g := NewWithT(t)
	g.Expect(PadPow2([]float64{1, 2, 3})).To(Equal([]float64{1, 2, 3, 0}))
	g.Expect(PadPow2([]float64{1, 2})).To(HaveLen(2))
}

func TestHeatMap(t *testing.T) {
	g := NewWithT(t)

	rows := [][]float64{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
	}
	out := HeatMap(rows, 4, 2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	g.Expect(lines).To(HaveLen(2))
	g.Expect(lines[0]).To(Equal("@@@@"))
	g.Expect(lines[1]).To(Equal("    "))

	g.Expect(HeatMap(nil, 10, 10)).To(BeEmpty())
	g.Expect(HeatMap([][]float64{{math.NaN(), 0, 1}}, 3, 1)).To(Equal("  @\n"))
}
