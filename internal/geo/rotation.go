package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// R1 is the frame rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 is the frame rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 is the frame rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

func elemental(axis byte, x float64) (*mat.Dense, error) {
	switch axis {
	case 'X', 'x', '1':
		return R1(x), nil
	case 'Y', 'y', '2':
		return R2(x), nil
	case 'Z', 'z', '3':
		return R3(x), nil
	}
	return nil, fmt.Errorf("geo: unknown rotation axis %q", axis)
}

// AngleToDCM builds the direction cosine matrix of three successive frame
// rotations a1, a2, a3 about the axes named by seq (e.g. "XYZ", "ZXZ"):
// D = R(seq[2], a3) · R(seq[1], a2) · R(seq[0], a1).
func AngleToDCM(a1, a2, a3 float64, seq string) (*mat.Dense, error) {
	if len(seq) != 3 {
		return nil, fmt.Errorf("geo: rotation sequence %q must name three axes", seq)
	}
	r1, err := elemental(seq[0], a1)
	if err != nil {
		return nil, err
	}
	r2, err := elemental(seq[1], a2)
	if err != nil {
		return nil, err
	}
	r3, err := elemental(seq[2], a3)
	if err != nil {
		return nil, err
	}
	var r32, d mat.Dense
	r32.Mul(r3, r2)
	d.Mul(&r32, r1)
	return &d, nil
}

// MulVec returns m·v for a 3x3 matrix. There is no dimension check.
func MulVec(m mat.Matrix, v Vec3) Vec3 {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, v.Slice()))
	return Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
