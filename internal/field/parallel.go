package field

import (
	"runtime"
	"sync"

	"github.com/san-kum/geoharm/internal/geo"
	"github.com/san-kum/geoharm/internal/gravity"
)

// ParallelFor executes fn over [0, n) split into contiguous chunks, one
// goroutine per chunk. Small ranges run on the calling goroutine.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk < 1 {
		minChunk = 1
	}
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// AccelerationBatch evaluates Acceleration at every position using one
// Evaluator per worker.
func AccelerationBatch(model *gravity.Model, positions []geo.Vec3, lim Limits) []geo.Vec3 {
	out := make([]geo.Vec3, len(positions))
	ParallelFor(len(positions), 64, func(start, end int) {
		e := New(model)
		for i := start; i < end; i++ {
			out[i] = e.Acceleration(positions[i], lim)
		}
	})
	return out
}

// PotentialBatch evaluates PotentialLimits at every position using one
// Evaluator per worker.
func PotentialBatch(model *gravity.Model, positions []geo.Vec3, lim Limits) []float64 {
	out := make([]float64, len(positions))
	ParallelFor(len(positions), 64, func(start, end int) {
		e := New(model)
		for i := start; i < end; i++ {
			out[i] = e.PotentialLimits(positions[i], lim)
		}
	})
	return out
}
