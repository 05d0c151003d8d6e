// Package viz provides the terminal field explorer.
//
// [Explorer] is a Bubble Tea model that moves a point over a gravity model
// and renders the potential, acceleration and radial anomaly there, plus a
// Braille [Canvas] plot of the anomaly along the current meridian.
//
// # Key Bindings
//
//	j/k, h/l - Move south/north, west/east by the current step
//	[ ]      - Halve / double the step
//	+ -      - Raise / lower the truncation degree
//	z        - Toggle zonal-only evaluation
//	u/d      - Raise / lower the altitude by 100 km
//	t        - Cycle color themes
//	?        - Show help
package viz
