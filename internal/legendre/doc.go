// Package legendre evaluates associated Legendre functions P(n,m)(cos θ)
// for every 0 <= m <= n <= nMax at a single angle.
//
// Two normalizations are supported:
//
//   - [Full]: fully normalized, used by gravity models (EGM96, JGM3)
//   - [Schmidt]: Schmidt quasi-normalized, used by geomagnetic models
//
// Both share the same three-term recurrence and differ only in the seed
// values and the a(n,m), b(n,m) coefficients. The optional phase term
// multiplies every order by (-1)^m (Condon–Shortley).
//
// # Matrices
//
// Results are written into square *mat.Dense buffers owned by the caller.
// Entry (n, m) is meaningful only for m <= n; the upper triangle is left
// untouched and stays zero on a freshly allocated matrix.
//
//	P := mat.NewDense(nMax+1, nMax+1, nil)
//	if err := legendre.Fill(P, theta, nMax, legendre.Full, false); err != nil {
//	    // P is not square or smaller than 2x2
//	}
//
// # Limits
//
// No renormalization is performed. Both normalizations keep |P| close to
// unity, which is sufficient up to a few hundred degrees in float64. Higher
// degrees underflow near the poles and are not supported.
//
// # Thread Safety
//
// The functions hold no state. A matrix must not be filled by two
// goroutines at once; use [Pool] to give each goroutine its own buffer.
package legendre
