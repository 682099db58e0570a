// Package viz draws fractal views in the terminal.
//
// The package provides two render sinks and an interactive explorer built on
// the Bubble Tea framework:
//
//   - [Terminal]: truecolor half-block cells, two pixels per cell
//   - [Dots]: braille cells marking interior points, eight pixels per cell
//   - [Explorer]: pan, zoom and retune a view, re-rendered on every change
//
// # Key Bindings
//
//	Arrows - Pan by a tenth of the visible width
//	+ / -  - Zoom in/out
//	[ ]    - Halve/double the iteration count
//	J      - Toggle between the Mandelbrot and Julia sets
//	C      - Use the current center as the Julia constant
//	D      - Toggle braille interior mode
//	T      - Cycle color themes
//	R      - Reset to the starting view
//	?      - Show help overlay
package viz
