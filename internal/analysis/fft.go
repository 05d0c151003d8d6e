package analysis

import (
	"errors"
	"math"
	"math/cmplx"
)

var ErrLength = errors.New("analysis: length must be a power of two")

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FFT returns the discrete Fourier transform of data. An empty input
// gives an empty result.
func FFT(data []float64) ([]complex128, error) {
	if len(data) == 0 {
		return []complex128{}, nil
	}
	if !isPow2(len(data)) {
		return nil, ErrLength
	}
	return fft(data), nil
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n == 1 {
		return []complex128{complex(data[0], 0)}
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns |X_k| for the first half of the transform.
func PowerSpectrum(data []float64) ([]float64, error) {
	x, err := FFT(data)
	if err != nil {
		return nil, err
	}
	ps := make([]float64, len(x)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(x[i])
	}
	return ps, nil
}

// OrderSpectrum returns the amplitude of cos(mλ + φ_m) for m in [0, N/2)
// of a profile sampled at N equally spaced longitudes. amp[0] is the mean.
func OrderSpectrum(values []float64) ([]float64, error) {
	n := len(values)
	if n < 2 {
		return nil, ErrLength
	}
	ps, err := PowerSpectrum(values)
	if err != nil {
		return nil, err
	}
	amp := make([]float64, len(ps))
	for m, v := range ps {
		if m == 0 {
			amp[m] = v / float64(n)
		} else {
			amp[m] = 2 * v / float64(n)
		}
	}
	return amp, nil
}

// PadPow2 zero-pads data to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}
