// Package field evaluates the gravitational potential of a spherical
// harmonic model, its spherical partial derivatives and the Cartesian
// acceleration.
//
//   - [Evaluator]: owns Legendre scratch buffers; one per goroutine
//   - [Potential], [Gradient], [Acceleration]: package-level helpers that
//     borrow pooled scratch for a single call
//   - [ParallelFor], [AccelerationBatch]: many points, one evaluator per
//     worker
//
// # Truncation
//
// A degree limit <= 0, or one above the model's maximum degree, means the
// full model. A negative order limit ([AllOrders]) means "same as the
// degree limit" and an order limit of 0 keeps the zonal terms only; an
// order limit is never allowed to exceed the degree limit. None of these
// cases is an error.
//
// # Frames and Units
//
// Positions are Cartesian [m] in the model's body-fixed frame (ECEF for
// Earth models). Accelerations are returned in the same frame [m/s²] and
// contain only gravitation: callers working in a rotating frame must add
// the centrifugal term themselves.
//
// # Thread Safety
//
// A [gravity.Model] may be shared freely. An [Evaluator] is NOT safe for
// concurrent use; the package-level functions are.
package field
