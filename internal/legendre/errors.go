package legendre

import "errors"

var (
	// ErrShape indicates a destination matrix that is not square or is
	// smaller than 2x2.
	ErrShape = errors.New("legendre: matrix must be square with dimension >= 2")

	// ErrDegree indicates a requested maximum degree below 1.
	ErrDegree = errors.New("legendre: maximum degree must be >= 1")

	// ErrNormalization indicates an unknown normalization selector.
	ErrNormalization = errors.New("legendre: unknown normalization")
)
