// Package fractal provides the escape-time kernel and the pixel-to-plane
// mapping shared by every renderer.
//
// The package defines:
//
//   - [Point]: a value on the complex plane
//   - [Kind]: the fractal variant (Mandelbrot or Julia) and its fixed constant
//   - [EscapeValue]: the countdown escape-time evaluator
//   - [Mapper]: precomputed pixel-to-plane scaling for a [View]
//
// # Escape convention
//
// EscapeValue counts down from the iteration limit. A point that escapes on
// the first step returns the limit itself, a point that never escapes
// returns 0. Larger values therefore mean faster escape:
//
//	v := fractal.EscapeValue(50, fractal.Point{Real: -2, Imag: 2}, fractal.Mandelbrot())
//	// v == 50
//
// # Thread Safety
//
// Every type here is an immutable value. A [Mapper] may be copied into any
// number of goroutines.
package fractal
