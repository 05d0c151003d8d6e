// Package analysis provides spectral and rendering helpers for sampled
// field profiles.
//
//   - [FFT], [PowerSpectrum]: radix-2 transform of a real sequence
//   - [OrderSpectrum]: per-order amplitude of a periodic latitude-circle
//     profile
//   - [HeatMap]: shaded ASCII rendering of a latitude/longitude grid
//
// # Order Content
//
// A potential sampled at N equally spaced longitudes along a latitude
// circle is a trigonometric polynomial in λ whose harmonics are the orders
// m of the model. For a model truncated at order M < N/2 every amplitude
// above M vanishes:
//
//	amp, err := analysis.OrderSpectrum(survey.Potentials(samples))
//	// amp[m] ≈ 0 for m > M
package analysis
