package legendre

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Pool recycles square matrices of one dimension. Each matrix handed out
// by Get belongs to the caller until it is returned with Put.
type Pool struct {
	pool sync.Pool
	dim  int
}

// NewPool creates a pool of (nMax+1)x(nMax+1) matrices. nMax below 1 is
// raised to 1 so pooled matrices always satisfy the shape contract.
func NewPool(nMax int) *Pool {
	if nMax < 1 {
		nMax = 1
	}
	dim := nMax + 1
	return &Pool{
		dim: dim,
		pool: sync.Pool{
			New: func() interface{} {
				return mat.NewDense(dim, dim, nil)
			},
		},
	}
}

// Dim returns the dimension of pooled matrices.
func (p *Pool) Dim() int { return p.dim }

// Get returns a matrix from the pool; its contents are unspecified.
func (p *Pool) Get() *mat.Dense {
	return p.pool.Get().(*mat.Dense)
}

// Put zeroes P and returns it to the pool. Matrices of another dimension
// are dropped.
func (p *Pool) Put(P *mat.Dense) {
	if P == nil {
		return
	}
	if r, c := P.Dims(); r == p.dim && c == p.dim {
		P.Zero()
		p.pool.Put(P)
	}
}
